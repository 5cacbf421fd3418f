package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Ashik756/eclass-hub/models"
)

// HTTPStore implements Store against the eclass-hub REST API
type HTTPStore struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// NewHTTPStore returns a store that talks to the API at baseURL with the given
// bearer token
func NewHTTPStore(baseURL, token string) *HTTPStore {
	return &HTTPStore{BaseURL: baseURL, Token: token, Client: http.DefaultClient}
}

func (s *HTTPStore) do(ctx context.Context, method, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, s.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.Token)

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ListComments fetches the full comment list for a class ordered by creation time
// ascending. An unknown class returns an empty list.
func (s *HTTPStore) ListComments(ctx context.Context, classID string) ([]models.LiveComment, error) {
	var comments []models.LiveComment
	err := s.do(ctx, http.MethodGet, "/api/v1/class/"+classID+"/comments", nil, &comments)
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetComment fetches one canonical comment record including the denormalized
// author fields
func (s *HTTPStore) GetComment(ctx context.Context, commentID string) (*models.LiveComment, error) {
	var comment models.LiveComment
	err := s.do(ctx, http.MethodGet, "/api/v1/comment/"+commentID, nil, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// InsertComment creates a new comment in the class's stream
func (s *HTTPStore) InsertComment(ctx context.Context, classID, authorID, message string) error {
	body := map[string]string{
		"authorID": authorID,
		"message":  message,
	}
	return s.do(ctx, http.MethodPost, "/api/v1/class/"+classID+"/comments", body, nil)
}

// DeleteComment removes a comment by id
func (s *HTTPStore) DeleteComment(ctx context.Context, commentID string) error {
	return s.do(ctx, http.MethodDelete, "/api/v1/comment/"+commentID, nil, nil)
}
