// Package exams collects a student's in-progress answers and converts them into
// exactly one authoritative, server-scored result. The answer key never reaches
// the client: students load a redacted question shape and scoring happens in a
// trusted remote call.
package exams

import (
	"context"
	"math"

	"github.com/Ashik756/eclass-hub/models"
)

// Viewer identifies who is loading or submitting a test
type Viewer struct {
	ID   string
	Role string
}

// LoadedTest is the role-dependent response of a test load. Students get the
// Redacted question set and any prior result; teachers get the full Questions
// set including the answer key.
type LoadedTest struct {
	Test           models.Test               `json:"test"`
	Questions      []models.TestQuestion     `json:"questions,omitempty"`
	Redacted       []models.RedactedQuestion `json:"redactedQuestions,omitempty"`
	ExistingResult *models.TestResult        `json:"existingResult,omitempty"`
}

// TotalQuestions returns the question count for either response shape
func (lt *LoadedTest) TotalQuestions() int {
	if len(lt.Questions) > 0 {
		return len(lt.Questions)
	}
	return len(lt.Redacted)
}

// Submission is the trusted scoring call's response. It never carries the
// answer key.
type Submission struct {
	ResultID       string `json:"resultID"`
	Score          int    `json:"score"`
	CorrectCount   int    `json:"correctCount"`
	TotalQuestions int    `json:"totalQuestions"`
}

// Service is the remote backend the coordinator delegates to
type Service interface {
	GetTest(ctx context.Context, testID string, viewer Viewer) (*LoadedTest, error)
	SubmitAnswers(ctx context.Context, testID string, viewer Viewer, answers map[int]int) (*Submission, error)
}

// Score computes the marks for a submission: the percentage of correct answers
// applied to the test's total marks, rounded once at the end. Per-question
// rounding would drift whenever the question count does not divide the marks
// evenly.
func Score(correctCount, totalQuestions, totalMarks int) int {
	if totalQuestions == 0 {
		return 0
	}
	return int(math.Round(float64(correctCount) / float64(totalQuestions) * float64(totalMarks)))
}
