package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ashik756/eclass-hub/api"
	"github.com/Ashik756/eclass-hub/config"
	"github.com/Ashik756/eclass-hub/databases"
	"github.com/Ashik756/eclass-hub/exams"
	"github.com/Ashik756/eclass-hub/models"
)

// Test exported for testing purposes
type Test struct {
	DB  databases.TestDatabase
	QDB databases.QuestionDatabase
	RDB databases.ResultDatabase
	UDB databases.UserDatabase
}

// CreateTestHandler creates a new test with its question set
func (t Test) CreateTestHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Test      models.TestDetails `json:"test"`
		Questions []struct {
			Question      string   `json:"question"`
			Options       []string `json:"options"`
			CorrectAnswer int      `json:"correctAnswer"`
		} `json:"questions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	now := primitive.NewDateTimeFromTime(time.Now())
	test := models.Test{
		ID:      primitive.NewObjectID(),
		Details: body.Test,
	}
	test.Details.CreatedAt = now
	test.Details.UpdatedAt = now

	if _, err := t.DB.InsertOne(ctx, test); err != nil {
		config.ErrorStatus("failed to insert test", http.StatusInternalServerError, w, err)
		return
	}

	for i, q := range body.Questions {
		question := models.TestQuestion{
			ID:            primitive.NewObjectID(),
			TestID:        test.ID.Hex(),
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			OrderIndex:    i,
		}
		if _, err := t.QDB.InsertOne(ctx, question); err != nil {
			config.ErrorStatus("failed to insert question", http.StatusInternalServerError, w, err)
			return
		}
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"_id": test.ID.Hex()})
}

// TestsByBatchIDHandler returns every test in a batch with its question count.
// Question bodies and answer keys are never included in the listing.
func (t Test) TestsByBatchIDHandler(w http.ResponseWriter, r *http.Request) {
	batchID := mux.Vars(r)["batch_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	sortDesc := options.Find().SetSort(bson.D{{Key: "test.createdAt", Value: -1}})
	tests, err := t.DB.Find(ctx, bson.M{"test.batchID": batchID}, sortDesc)
	if err != nil {
		config.ErrorStatus("failed to get tests by batch ID", http.StatusInternalServerError, w, err)
		return
	}

	type testWithCount struct {
		models.Test
		QuestionCount int64 `json:"questionCount"`
	}
	resp := make([]testWithCount, 0, len(tests))
	for _, tt := range tests {
		count, err := t.QDB.CountDocuments(ctx, bson.M{"testID": tt.ID.Hex()})
		if err != nil {
			config.ErrorStatus("failed to count questions", http.StatusInternalServerError, w, err)
			return
		}
		resp = append(resp, testWithCount{Test: tt, QuestionCount: count})
	}

	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// TestByIDHandler returns a test in the shape appropriate to the viewer's role.
// Students get questions with the answer key stripped plus any existing result so
// the UI can render review mode; teachers own the content and get the full set.
func (t Test) TestByIDHandler(w http.ResponseWriter, r *http.Request) {
	testID := mux.Vars(r)["test_id"]
	viewerID := r.URL.Query().Get("studentID")

	bID, err := primitive.ObjectIDFromHex(testID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	test, err := t.DB.FindOne(ctx, bson.M{"_id": bID})
	if err != nil {
		config.ErrorStatus("failed to get test by ID", http.StatusNotFound, w, err)
		return
	}

	sortAsc := options.Find().SetSort(bson.D{{Key: "orderIndex", Value: 1}})
	questions, err := t.QDB.Find(ctx, bson.M{"testID": testID}, sortAsc)
	if err != nil {
		config.ErrorStatus("failed to get questions", http.StatusInternalServerError, w, err)
		return
	}

	viewer, err := t.UDB.FindOne(ctx, bson.M{"_id": viewerID})
	if err != nil {
		config.ErrorStatus("failed to get viewer by ID", http.StatusNotFound, w, err)
		return
	}

	loaded := exams.LoadedTest{Test: *test}
	if viewer.Details.Role == models.RoleTeacher {
		loaded.Questions = questions
	} else {
		redacted := make([]models.RedactedQuestion, 0, len(questions))
		for _, q := range questions {
			redacted = append(redacted, q.Redact())
		}
		loaded.Redacted = redacted

		// a prior submission means review mode; absence is a normal state
		if result, err := t.RDB.FindOne(ctx, bson.M{"testID": testID, "studentID": viewerID}); err == nil {
			loaded.ExistingResult = result
		}
	}

	b, err := json.Marshal(loaded)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SubmitTestHandler is the trusted scoring call. The answer key is looked up
// server side, the score is computed here, and exactly one result row is kept
// per (student, test) pair: a re-submission overwrites rather than duplicates.
// The response never includes the correct answers.
func (t Test) SubmitTestHandler(w http.ResponseWriter, r *http.Request) {
	testID := mux.Vars(r)["test_id"]

	bID, err := primitive.ObjectIDFromHex(testID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var body struct {
		StudentID string         `json:"studentID"`
		Answers   map[string]int `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if body.StudentID == "" {
		config.ErrorStatus("studentID is required", http.StatusBadRequest, w, fmt.Errorf("missing studentID"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	test, err := t.DB.FindOne(ctx, bson.M{"_id": bID})
	if err != nil {
		config.ErrorStatus("failed to get test by ID", http.StatusNotFound, w, err)
		return
	}

	sortAsc := options.Find().SetSort(bson.D{{Key: "orderIndex", Value: 1}})
	questions, err := t.QDB.Find(ctx, bson.M{"testID": testID}, sortAsc)
	if err != nil {
		config.ErrorStatus("failed to get questions", http.StatusInternalServerError, w, err)
		return
	}

	// every question must be answered
	unanswered := 0
	for i := range questions {
		if _, ok := body.Answers[strconv.Itoa(i)]; !ok {
			unanswered++
		}
	}
	if unanswered > 0 {
		config.ErrorStatus(
			fmt.Sprintf("%d questions remain unanswered", unanswered),
			http.StatusBadRequest, w, fmt.Errorf("incomplete submission"))
		return
	}

	correctCount := 0
	for i, q := range questions {
		if body.Answers[strconv.Itoa(i)] == q.CorrectAnswer {
			correctCount++
		}
	}
	score := exams.Score(correctCount, len(questions), test.Details.TotalMarks)

	// reuse the existing row's id so an overwrite stays a single result
	resultID := primitive.NewObjectID()
	if existing, err := t.RDB.FindOne(ctx, bson.M{"testID": testID, "studentID": body.StudentID}); err == nil {
		resultID = existing.ID
	}

	result := models.TestResult{
		ID:             resultID,
		TestID:         testID,
		StudentID:      body.StudentID,
		Answers:        body.Answers,
		Score:          score,
		CorrectCount:   correctCount,
		TotalQuestions: len(questions),
		SubmittedAt:    primitive.NewDateTimeFromTime(time.Now()),
	}

	upsert := true
	err = t.RDB.ReplaceOne(ctx,
		bson.M{"testID": testID, "studentID": body.StudentID},
		result,
		&options.ReplaceOptions{Upsert: &upsert},
	)
	if err != nil {
		config.ErrorStatus("failed to save result", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(exams.Submission{
		ResultID:       resultID.Hex(),
		Score:          score,
		CorrectCount:   correctCount,
		TotalQuestions: len(questions),
	})
}

// ResultByStudentHandler returns the single authoritative result for a
// (student, test) pair
func (t Test) ResultByStudentHandler(w http.ResponseWriter, r *http.Request) {
	testID := mux.Vars(r)["test_id"]
	studentID := mux.Vars(r)["student_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := t.RDB.FindOne(ctx, bson.M{"testID": testID, "studentID": studentID})
	if err != nil {
		config.ErrorStatus("failed to get result", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
