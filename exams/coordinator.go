package exams

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// SubmitResult is the outcome of a Submit call. Validation failures are rejected
// before any network call and report the exact number of unanswered questions.
type SubmitResult struct {
	Success    bool        `json:"success"`
	Error      string      `json:"error,omitempty"`
	Remaining  int         `json:"remaining,omitempty"`
	Submission *Submission `json:"submission,omitempty"`
}

// Coordinator owns one student's pending answer map for one test. The map is
// never shared between instances and survives failed submissions so the student
// can retry without re-answering.
type Coordinator struct {
	svc    Service
	viewer Viewer

	mu       sync.Mutex
	testID   string
	total    int
	answers  map[int]int
	inFlight bool
	result   *Submission
}

// NewCoordinator returns a coordinator for the given viewer
func NewCoordinator(svc Service, viewer Viewer) *Coordinator {
	return &Coordinator{svc: svc, viewer: viewer}
}

// LoadTest fetches the test in the viewer's role-appropriate shape and resets
// the pending answer map. If a prior submission exists for a student it is
// returned so the UI can render review mode instead of the answer form.
func (c *Coordinator) LoadTest(ctx context.Context, testID string) (*LoadedTest, error) {
	loaded, err := c.svc.GetTest(ctx, testID, c.viewer)
	if err != nil {
		zap.S().Errorw("failed to load test", "testID", testID, "error", err)
		return nil, err
	}

	c.mu.Lock()
	c.testID = testID
	c.total = loaded.TotalQuestions()
	c.answers = make(map[int]int)
	c.result = nil
	if loaded.ExistingResult != nil {
		c.result = &Submission{
			ResultID:       loaded.ExistingResult.ID.Hex(),
			Score:          loaded.ExistingResult.Score,
			CorrectCount:   loaded.ExistingResult.CorrectCount,
			TotalQuestions: loaded.ExistingResult.TotalQuestions,
		}
	}
	c.mu.Unlock()
	return loaded, nil
}

// RecordAnswer stores the chosen option for a question, overwriting any prior
// choice. Purely local; no network call.
func (c *Coordinator) RecordAnswer(questionIndex, optionIndex int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.answers == nil {
		c.answers = make(map[int]int)
	}
	if questionIndex < 0 || questionIndex >= c.total {
		return
	}
	c.answers[questionIndex] = optionIndex
}

// Unanswered returns how many questions still lack an answer
func (c *Coordinator) Unanswered() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total - len(c.answers)
}

// Result returns the authoritative submission if one exists
func (c *Coordinator) Result() *Submission {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Submit sends the complete answer map to the trusted scoring call. It rejects
// locally, with zero network calls, when any question is unanswered or when a
// prior submit is still in flight. On failure the pending answers are preserved
// for retry.
func (c *Coordinator) Submit(ctx context.Context) SubmitResult {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return SubmitResult{Success: false, Error: "a submission is already in progress"}
	}
	if remaining := c.total - len(c.answers); remaining > 0 {
		c.mu.Unlock()
		return SubmitResult{
			Success:   false,
			Error:     fmt.Sprintf("%d questions remain unanswered", remaining),
			Remaining: remaining,
		}
	}
	c.inFlight = true
	testID := c.testID
	answers := make(map[int]int, len(c.answers))
	for k, v := range c.answers {
		answers[k] = v
	}
	c.mu.Unlock()

	submission, err := c.svc.SubmitAnswers(ctx, testID, c.viewer, answers)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		zap.S().Errorw("failed to submit test", "testID", testID, "error", err)
		return SubmitResult{Success: false, Error: err.Error()}
	}
	c.result = submission
	return SubmitResult{Success: true, Submission: submission}
}
