package exams

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// HTTPService implements Service against the eclass-hub REST API
type HTTPService struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// NewHTTPService returns a service that talks to the API at baseURL with the
// given bearer token
func NewHTTPService(baseURL, token string) *HTTPService {
	return &HTTPService{BaseURL: baseURL, Token: token, Client: http.DefaultClient}
}

func (s *HTTPService) do(ctx context.Context, method, path string, body, out interface{}) error {
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

// GetTest loads a test in the viewer's role-appropriate shape. The server decides
// the shape from the authenticated role; the query parameters identify the viewer
// for result lookup.
func (s *HTTPService) GetTest(ctx context.Context, testID string, viewer Viewer) (*LoadedTest, error) {
	var loaded LoadedTest
	err := s.do(ctx, http.MethodGet, "/api/v1/test/"+testID+"?studentID="+viewer.ID, nil, &loaded)
	if err != nil {
		return nil, err
	}
	return &loaded, nil
}

// SubmitAnswers delegates scoring to the server. Answers are keyed by question
// index; JSON object keys are strings so the map is converted on the way out.
func (s *HTTPService) SubmitAnswers(ctx context.Context, testID string, viewer Viewer, answers map[int]int) (*Submission, error) {
	wire := make(map[string]int, len(answers))
	for k, v := range answers {
		wire[strconv.Itoa(k)] = v
	}
	body := map[string]interface{}{
		"studentID": viewer.ID,
		"answers":   wire,
	}
	var submission Submission
	err := s.do(ctx, http.MethodPost, "/api/v1/test/"+testID+"/submit", body, &submission)
	if err != nil {
		return nil, err
	}
	return &submission, nil
}
