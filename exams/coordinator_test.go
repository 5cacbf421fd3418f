package exams

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ashik756/eclass-hub/models"
)

type fakeService struct {
	mu          sync.Mutex
	loaded      *LoadedTest
	loadErr     error
	submission  *Submission
	submitErr   error
	submits     int
	lastAnswers map[int]int
	// when set, SubmitAnswers blocks until the channel is closed
	block chan struct{}
}

func (s *fakeService) GetTest(_ context.Context, _ string, _ Viewer) (*LoadedTest, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.loaded, nil
}

func (s *fakeService) SubmitAnswers(_ context.Context, _ string, _ Viewer, answers map[int]int) (*Submission, error) {
	s.mu.Lock()
	s.submits++
	s.lastAnswers = answers
	block := s.block
	s.mu.Unlock()
	if block != nil {
		<-block
	}
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return s.submission, nil
}

func (s *fakeService) submitCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submits
}

func redactedQuestions(n int) []models.RedactedQuestion {
	out := make([]models.RedactedQuestion, n)
	for i := range out {
		out[i] = models.RedactedQuestion{Question: "q", Options: []string{"a", "b", "c", "d"}, OrderIndex: i}
	}
	return out
}

func studentCoordinator(t *testing.T, svc *fakeService, questions int) *Coordinator {
	t.Helper()
	svc.loaded = &LoadedTest{Redacted: redactedQuestions(questions)}
	c := NewCoordinator(svc, Viewer{ID: "student-1", Role: models.RoleStudent})
	_, err := c.LoadTest(context.Background(), "test-1")
	require.NoError(t, err)
	return c
}

func TestScore(t *testing.T) {
	tests := []struct {
		name                        string
		correct, total, marks, want int
	}{
		{"three of four on a hundred", 3, 4, 100, 75},
		{"one of three on ten rounds down", 1, 3, 10, 3},
		{"two of three on a hundred rounds up", 2, 3, 100, 67},
		{"perfect score", 3, 3, 50, 50},
		{"nothing correct", 0, 5, 100, 0},
		{"zero questions", 0, 0, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.correct, tt.total, tt.marks))
		})
	}
}

func TestLoadTestResetsPendingAnswers(t *testing.T) {
	svc := &fakeService{}
	c := studentCoordinator(t, svc, 3)
	c.RecordAnswer(0, 1)
	c.RecordAnswer(1, 2)
	assert.Equal(t, 1, c.Unanswered())

	_, err := c.LoadTest(context.Background(), "test-1")
	require.NoError(t, err)
	assert.Equal(t, 3, c.Unanswered())
}

func TestLoadTestCapturesExistingResult(t *testing.T) {
	svc := &fakeService{loaded: &LoadedTest{
		Redacted: redactedQuestions(2),
		ExistingResult: &models.TestResult{
			ID:             primitive.NewObjectID(),
			Score:          8,
			CorrectCount:   4,
			TotalQuestions: 5,
		},
	}}
	c := NewCoordinator(svc, Viewer{ID: "student-1", Role: models.RoleStudent})
	_, err := c.LoadTest(context.Background(), "test-1")
	require.NoError(t, err)

	result := c.Result()
	require.NotNil(t, result)
	assert.Equal(t, 8, result.Score)
	assert.Equal(t, 4, result.CorrectCount)
}

func TestRecordAnswerOverwritesPriorChoice(t *testing.T) {
	svc := &fakeService{submission: &Submission{Score: 10}}
	c := studentCoordinator(t, svc, 1)
	c.RecordAnswer(0, 1)
	c.RecordAnswer(0, 3)

	res := c.Submit(context.Background())
	require.True(t, res.Success)
	assert.Equal(t, map[int]int{0: 3}, svc.lastAnswers)
}

func TestRecordAnswerIgnoresOutOfRangeIndex(t *testing.T) {
	c := studentCoordinator(t, &fakeService{}, 2)
	c.RecordAnswer(-1, 0)
	c.RecordAnswer(2, 0)
	assert.Equal(t, 2, c.Unanswered())
}

func TestSubmitRejectsPartialAnswersWithoutNetworkCall(t *testing.T) {
	svc := &fakeService{}
	c := studentCoordinator(t, svc, 4)
	c.RecordAnswer(0, 1)

	res := c.Submit(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, 3, res.Remaining)
	assert.Equal(t, "3 questions remain unanswered", res.Error)
	assert.Equal(t, 0, svc.submitCount())
}

func TestSubmitRejectsWhileAnotherSubmitIsInFlight(t *testing.T) {
	svc := &fakeService{submission: &Submission{Score: 10}, block: make(chan struct{})}
	c := studentCoordinator(t, svc, 1)
	c.RecordAnswer(0, 2)

	done := make(chan SubmitResult, 1)
	go func() { done <- c.Submit(context.Background()) }()

	// wait until the first submit reaches the service
	for svc.submitCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	second := c.Submit(context.Background())
	assert.False(t, second.Success)
	assert.Equal(t, "a submission is already in progress", second.Error)

	close(svc.block)
	first := <-done
	assert.True(t, first.Success)
	assert.Equal(t, 1, svc.submitCount())
}

func TestSubmitFailurePreservesAnswersForRetry(t *testing.T) {
	svc := &fakeService{submitErr: errors.New("network down")}
	c := studentCoordinator(t, svc, 2)
	c.RecordAnswer(0, 1)
	c.RecordAnswer(1, 0)

	res := c.Submit(context.Background())
	assert.False(t, res.Success)
	assert.Nil(t, c.Result())
	assert.Equal(t, 0, c.Unanswered())

	svc.submitErr = nil
	svc.submission = &Submission{Score: 7, CorrectCount: 1, TotalQuestions: 2}
	retry := c.Submit(context.Background())
	require.True(t, retry.Success)
	assert.Equal(t, 7, retry.Submission.Score)
}

func TestSubmitStoresAuthoritativeResult(t *testing.T) {
	svc := &fakeService{submission: &Submission{
		ResultID:       "result-1",
		Score:          75,
		CorrectCount:   3,
		TotalQuestions: 4,
	}}
	c := studentCoordinator(t, svc, 4)
	for i := 0; i < 4; i++ {
		c.RecordAnswer(i, 0)
	}

	res := c.Submit(context.Background())
	require.True(t, res.Success)
	assert.Equal(t, 75, res.Submission.Score)

	stored := c.Result()
	require.NotNil(t, stored)
	assert.Equal(t, "result-1", stored.ResultID)
}

func TestLoadedTestTotalQuestions(t *testing.T) {
	teacherView := &LoadedTest{Questions: make([]models.TestQuestion, 5)}
	studentView := &LoadedTest{Redacted: redactedQuestions(3)}
	assert.Equal(t, 5, teacherView.TotalQuestions())
	assert.Equal(t, 3, studentView.TotalQuestions())
}
