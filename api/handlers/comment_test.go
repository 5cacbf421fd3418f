package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ashik756/eclass-hub/api/handlers"
	"github.com/Ashik756/eclass-hub/databases"
	"github.com/Ashik756/eclass-hub/databases/mocks"
	"github.com/Ashik756/eclass-hub/models"
)

func TestComment_CommentsByClassIDHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/class/class-1/comments", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"class_id": "class-1"})

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	cursorHelper.(*mocks.CursorHelper).On("All", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(1).(*[]models.LiveComment)
		*arg = []models.LiveComment{
			{ID: primitive.NewObjectID(), ClassID: "class-1", AuthorName: "Ada", Message: "hello"},
		}
	})
	conn.(*mocks.CollectionHelper).On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursorHelper)
	db.(*MockDatabaseHelper).On("Collection", "livecomments").Return(conn)

	c := handlers.Comment{DB: databases.NewCommentDatabase(db), Hub: handlers.NewCommentHub()}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.CommentsByClassIDHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "hello") {
		t.Errorf("expected comment message in response, got %v", rr.Body.String())
	}
}

func TestComment_CommentsByClassIDHandlerEmptyClass(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/class/class-1/comments", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"class_id": "class-1"})

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	cursorHelper.(*mocks.CursorHelper).On("All", mock.Anything, mock.Anything).Return(nil)
	conn.(*mocks.CollectionHelper).On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursorHelper)
	db.(*MockDatabaseHelper).On("Collection", "livecomments").Return(conn)

	c := handlers.Comment{DB: databases.NewCommentDatabase(db), Hub: handlers.NewCommentHub()}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.CommentsByClassIDHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	// an empty class is a list, not null and not an error
	expected := `[]`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestComment_CreateCommentHandlerEmptyMessage(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/class/class-1/comments",
		strings.NewReader(`{"authorID":"user-1","message":"   \n\t  "}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"class_id": "class-1"})

	c := handlers.Comment{Hub: handlers.NewCommentHub()}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.CreateCommentHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
	}

	expected := `{"response": "message must not be empty, empty message"}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestComment_CreateCommentHandler(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/class/class-1/comments",
		strings.NewReader(`{"authorID":"user-1","message":"  hello class  "}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"class_id": "class-1"})

	var db databases.DatabaseHelper
	var commentConn databases.CollectionHelper
	var userConn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	commentConn = &mocks.CollectionHelper{}
	userConn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}

	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.User)
		(*arg).ID = "user-1"
		(*arg).Details.Name = "Ada"
		(*arg).Details.Role = models.RoleStudent
	})
	userConn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	commentConn.(*mocks.CollectionHelper).On("InsertOne", mock.Anything, mock.Anything).Return(&mocks.InsertOneResultHelper{})
	db.(*MockDatabaseHelper).On("Collection", "profiles").Return(userConn)
	db.(*MockDatabaseHelper).On("Collection", "livecomments").Return(commentConn)

	c := handlers.Comment{
		DB:  databases.NewCommentDatabase(db),
		UDB: databases.NewUserDatabase(db),
		Hub: handlers.NewCommentHub(),
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.CreateCommentHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusCreated {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusCreated)
	}

	inserted := commentConn.(*mocks.CollectionHelper).Calls[0].Arguments.Get(1).(models.LiveComment)
	if inserted.Message != "hello class" {
		t.Errorf("expected message to be trimmed before insert, got %q", inserted.Message)
	}
	if inserted.AuthorName != "Ada" || inserted.AuthorRole != models.RoleStudent {
		t.Errorf("expected author fields denormalized onto the row, got %+v", inserted)
	}
}

func TestComment_DeleteCommentHandlerForbiddenForStudents(t *testing.T) {
	commentID := primitive.NewObjectID()
	req, err := http.NewRequest("DELETE", "/api/v1/comment/"+commentID.Hex()+"?requesterID=student-1", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"comment_id": commentID.Hex()})

	var db databases.DatabaseHelper
	var commentConn databases.CollectionHelper
	var userConn databases.CollectionHelper
	var commentResult databases.SingleResultHelper
	var userResult databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	commentConn = &mocks.CollectionHelper{}
	userConn = &mocks.CollectionHelper{}
	commentResult = &mocks.SingleResultHelper{}
	userResult = &mocks.SingleResultHelper{}

	commentResult.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.LiveComment)
		(*arg).ID = commentID
		(*arg).ClassID = "class-1"
		(*arg).AuthorID = "user-2"
	})
	userResult.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.User)
		(*arg).ID = "student-1"
		(*arg).Details.Role = models.RoleStudent
	})
	commentConn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(commentResult)
	userConn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(userResult)
	db.(*MockDatabaseHelper).On("Collection", "livecomments").Return(commentConn)
	db.(*MockDatabaseHelper).On("Collection", "profiles").Return(userConn)

	c := handlers.Comment{
		DB:  databases.NewCommentDatabase(db),
		UDB: databases.NewUserDatabase(db),
		Hub: handlers.NewCommentHub(),
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.DeleteCommentHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusForbidden {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusForbidden)
	}
}

func TestComment_DeleteCommentHandlerForbiddenForOwnComment(t *testing.T) {
	commentID := primitive.NewObjectID()
	req, err := http.NewRequest("DELETE", "/api/v1/comment/"+commentID.Hex()+"?requesterID=teacher-1", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"comment_id": commentID.Hex()})

	var db databases.DatabaseHelper
	var commentConn databases.CollectionHelper
	var userConn databases.CollectionHelper
	var commentResult databases.SingleResultHelper
	var userResult databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	commentConn = &mocks.CollectionHelper{}
	userConn = &mocks.CollectionHelper{}
	commentResult = &mocks.SingleResultHelper{}
	userResult = &mocks.SingleResultHelper{}

	commentResult.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.LiveComment)
		(*arg).ID = commentID
		(*arg).ClassID = "class-1"
		(*arg).AuthorID = "teacher-1"
	})
	userResult.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.User)
		(*arg).ID = "teacher-1"
		(*arg).Details.Role = models.RoleTeacher
	})
	commentConn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(commentResult)
	userConn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(userResult)
	db.(*MockDatabaseHelper).On("Collection", "livecomments").Return(commentConn)
	db.(*MockDatabaseHelper).On("Collection", "profiles").Return(userConn)

	c := handlers.Comment{
		DB:  databases.NewCommentDatabase(db),
		UDB: databases.NewUserDatabase(db),
		Hub: handlers.NewCommentHub(),
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.DeleteCommentHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusForbidden {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusForbidden)
	}
}

func TestComment_DeleteCommentHandler(t *testing.T) {
	commentID := primitive.NewObjectID()
	req, err := http.NewRequest("DELETE", "/api/v1/comment/"+commentID.Hex()+"?requesterID=teacher-1", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"comment_id": commentID.Hex()})

	var db databases.DatabaseHelper
	var commentConn databases.CollectionHelper
	var userConn databases.CollectionHelper
	var commentResult databases.SingleResultHelper
	var userResult databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	commentConn = &mocks.CollectionHelper{}
	userConn = &mocks.CollectionHelper{}
	commentResult = &mocks.SingleResultHelper{}
	userResult = &mocks.SingleResultHelper{}

	commentResult.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.LiveComment)
		(*arg).ID = commentID
		(*arg).ClassID = "class-1"
		(*arg).AuthorID = "student-1"
	})
	userResult.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.User)
		(*arg).ID = "teacher-1"
		(*arg).Details.Role = models.RoleTeacher
	})
	commentConn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(commentResult)
	commentConn.(*mocks.CollectionHelper).On("DeleteOne", mock.Anything, mock.Anything).Return(nil)
	userConn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(userResult)
	db.(*MockDatabaseHelper).On("Collection", "livecomments").Return(commentConn)
	db.(*MockDatabaseHelper).On("Collection", "profiles").Return(userConn)

	c := handlers.Comment{
		DB:  databases.NewCommentDatabase(db),
		UDB: databases.NewUserDatabase(db),
		Hub: handlers.NewCommentHub(),
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.DeleteCommentHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), commentID.Hex()) {
		t.Errorf("expected deleted comment id in response, got %v", rr.Body.String())
	}
}

func TestComment_DeleteCommentHandlerInvalidID(t *testing.T) {
	req, err := http.NewRequest("DELETE", "/api/v1/comment/not-a-hex", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"comment_id": "not-a-hex"})

	c := handlers.Comment{Hub: handlers.NewCommentHub()}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.DeleteCommentHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
	}
}

func TestComment_CommentByIDHandlerNotFound(t *testing.T) {
	commentID := primitive.NewObjectID()
	req, err := http.NewRequest("GET", "/api/v1/comment/"+commentID.Hex(), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"comment_id": commentID.Hex()})

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}

	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(errors.New("mocked-error"))
	conn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.(*MockDatabaseHelper).On("Collection", "livecomments").Return(conn)

	c := handlers.Comment{DB: databases.NewCommentDatabase(db), Hub: handlers.NewCommentHub()}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(c.CommentByIDHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusNotFound {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusNotFound)
	}

	expected := `{"response": "failed to get comment by ID, mocked-error"}`
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}
