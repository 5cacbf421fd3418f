package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ashik756/eclass-hub/models"
)

func TestHTTPStoreListComments(t *testing.T) {
	want := []models.LiveComment{
		{ID: primitive.NewObjectID(), ClassID: "class-1", Message: "first"},
		{ID: primitive.NewObjectID(), ClassID: "class-1", Message: "second"},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/class/class-1/comments", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, "tok-1")
	got, err := store.ListComments(context.Background(), "class-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Message)
}

func TestHTTPStoreInsertComment(t *testing.T) {
	var received map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/class/class-1/comments", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, "tok-1")
	require.NoError(t, store.InsertComment(context.Background(), "class-1", "user-1", "hello"))
	assert.Equal(t, "user-1", received["authorID"])
	assert.Equal(t, "hello", received["message"])
}

func TestHTTPStoreDeleteCommentErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, "tok-1")
	err := store.DeleteComment(context.Background(), "abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestHTTPStoreGetComment(t *testing.T) {
	id := primitive.NewObjectID()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/comment/"+id.Hex(), r.URL.Path)
		json.NewEncoder(w).Encode(models.LiveComment{ID: id, AuthorName: "Ada", Message: "hi"})
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, "tok-1")
	got, err := store.GetComment(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.AuthorName)
}
