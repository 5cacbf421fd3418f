package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ashik756/eclass-hub/api/handlers"
	"github.com/Ashik756/eclass-hub/databases"
	"github.com/Ashik756/eclass-hub/databases/mocks"
	"github.com/Ashik756/eclass-hub/models"
)

func TestBatch_CreateBatchHandlerForbiddenForStudents(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/batch",
		strings.NewReader(`{"name":"Physics 101","teacherID":"student-1"}`))
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}

	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.User)
		(*arg).ID = "student-1"
		(*arg).Details.Role = models.RoleStudent
	})
	conn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.(*MockDatabaseHelper).On("Collection", "profiles").Return(conn)

	b := handlers.Batch{UDB: databases.NewUserDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(b.CreateBatchHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusForbidden {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusForbidden)
	}
}

func TestBatch_CreateBatchHandlerGeneratesInviteCode(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/batch",
		strings.NewReader(`{"name":"Physics 101","teacherID":"teacher-1"}`))
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var batchConn databases.CollectionHelper
	var userConn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	batchConn = &mocks.CollectionHelper{}
	userConn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}

	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.User)
		(*arg).ID = "teacher-1"
		(*arg).Details.Role = models.RoleTeacher
	})
	userConn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	batchConn.(*mocks.CollectionHelper).On("InsertOne", mock.Anything, mock.Anything).Return(&mocks.InsertOneResultHelper{})
	db.(*MockDatabaseHelper).On("Collection", "profiles").Return(userConn)
	db.(*MockDatabaseHelper).On("Collection", "batches").Return(batchConn)

	b := handlers.Batch{
		DB:  databases.NewBatchDatabase(db),
		UDB: databases.NewUserDatabase(db),
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(b.CreateBatchHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusCreated {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusCreated)
	}
	if !strings.Contains(rr.Body.String(), "inviteCode") {
		t.Errorf("expected invite code in response, got %v", rr.Body.String())
	}

	inserted := batchConn.(*mocks.CollectionHelper).Calls[0].Arguments.Get(1).(models.Batch)
	if inserted.Details.InviteCode == "" {
		t.Errorf("expected generated invite code on the inserted batch, got %+v", inserted.Details)
	}
}

func TestBatch_JoinBatchHandlerIsIdempotent(t *testing.T) {
	batchID := primitive.NewObjectID()
	req, err := http.NewRequest("POST", "/api/v1/batch/join",
		strings.NewReader(`{"studentID":"student-1","inviteCode":"abc123"}`))
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var batchConn databases.CollectionHelper
	var enrollConn databases.CollectionHelper
	var batchResult databases.SingleResultHelper
	var enrollResult databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	batchConn = &mocks.CollectionHelper{}
	enrollConn = &mocks.CollectionHelper{}
	batchResult = &mocks.SingleResultHelper{}
	enrollResult = &mocks.SingleResultHelper{}

	batchResult.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Batch)
		(*arg).ID = batchID
	})
	// the student is already enrolled
	enrollResult.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Enrollment)
		(*arg).BatchID = batchID.Hex()
		(*arg).StudentID = "student-1"
	})
	batchConn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(batchResult)
	enrollConn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(enrollResult)
	db.(*MockDatabaseHelper).On("Collection", "batches").Return(batchConn)
	db.(*MockDatabaseHelper).On("Collection", "enrollments").Return(enrollConn)

	b := handlers.Batch{
		DB:  databases.NewBatchDatabase(db),
		EDB: databases.NewEnrollmentDatabase(db),
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(b.JoinBatchHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), batchID.Hex()) {
		t.Errorf("expected batch id in response, got %v", rr.Body.String())
	}
	// no second enrollment row
	enrollConn.(*mocks.CollectionHelper).AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestBatch_CreateCheckoutSessionHandlerFreeBatch(t *testing.T) {
	batchID := primitive.NewObjectID()
	req, err := http.NewRequest("POST", "/api/v1/batch/checkout-session",
		strings.NewReader(`{"batchID":"`+batchID.Hex()+`","successUrl":"https://x/ok","cancelUrl":"https://x/no"}`))
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}

	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Batch)
		(*arg).ID = batchID
		(*arg).Details.Premium = false
	})
	conn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.(*MockDatabaseHelper).On("Collection", "batches").Return(conn)

	b := handlers.Batch{DB: databases.NewBatchDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(b.CreateCheckoutSessionHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
	}

	expected := `{"response": "batch is free to join, not a premium batch"}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}
