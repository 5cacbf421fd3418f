package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Test holds the structure for the tests collection in mongo
type Test struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details TestDetails        `json:"test" bson:"test"`
}

// TestDetails holds the inner structure for the tests collection
type TestDetails struct {
	BatchID     string             `json:"batchID" bson:"batchID"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Duration    int                `json:"duration" bson:"duration"` // minutes
	TotalMarks  int                `json:"totalMarks" bson:"totalMarks"`
	CreatedAt   primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt   primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// TestQuestion holds the structure for the questions collection in mongo. The
// CorrectAnswer field is the index into Options and must never be serialized into
// a student-facing response, hence the redacted sibling below.
type TestQuestion struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id"`
	TestID        string             `json:"testID" bson:"testID"`
	Question      string             `json:"question" bson:"question"`
	Options       []string           `json:"options" bson:"options"`
	CorrectAnswer int                `json:"correctAnswer" bson:"correctAnswer"`
	OrderIndex    int                `json:"orderIndex" bson:"orderIndex"`
}

// RedactedQuestion is the student-facing shape of a test question. It is a distinct
// struct rather than a filtered TestQuestion so the answer key cannot leak through a
// forgotten omitempty or a stale field.
type RedactedQuestion struct {
	ID         primitive.ObjectID `json:"_id"`
	TestID     string             `json:"testID"`
	Question   string             `json:"question"`
	Options    []string           `json:"options"`
	OrderIndex int                `json:"orderIndex"`
}

// Redact strips the answer key from a question.
func (q TestQuestion) Redact() RedactedQuestion {
	return RedactedQuestion{
		ID:         q.ID,
		TestID:     q.TestID,
		Question:   q.Question,
		Options:    q.Options,
		OrderIndex: q.OrderIndex,
	}
}

// TestResult holds the structure for the results collection in mongo. There is at
// most one row per (testID, studentID) pair; a re-submission overwrites.
type TestResult struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id"`
	TestID         string             `json:"testID" bson:"testID"`
	StudentID      string             `json:"studentID" bson:"studentID"`
	Answers        map[string]int     `json:"answers" bson:"answers"` // question index -> chosen option
	Score          int                `json:"score" bson:"score"`
	CorrectCount   int                `json:"correctCount" bson:"correctCount"`
	TotalQuestions int                `json:"totalQuestions" bson:"totalQuestions"`
	SubmittedAt    primitive.DateTime `json:"submittedAt" bson:"submittedAt"`
}
