package quizclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lshigami/placement/internal/dto"
	"github.com/lshigami/placement/internal/model"
)

const defaultTimeout = 15 * time.Second

// Client talks to the placement quiz HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for baseURL. A nil httpClient gets a default with a
// 15s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("quiz api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("quiz api: status %d: %s", e.StatusCode, e.Message)
}

func (c *Client) FetchQuestions(ctx context.Context) ([]dto.QuestionResponse, error) {
	var questions []dto.QuestionResponse
	if err := c.do(ctx, http.MethodGet, "/api/questions", nil, &questions); err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	return questions, nil
}

func (c *Client) Grade(ctx context.Context, score, total int) (model.Level, error) {
	var resp dto.GradeResponse
	req := dto.GradeRequest{Score: score, Total: total}
	if err := c.do(ctx, http.MethodPost, "/api/grade", req, &resp); err != nil {
		return "", fmt.Errorf("grade: %w", err)
	}
	if resp.Level.Rank() < 0 {
		return "", fmt.Errorf("grade: server returned unknown level %q", resp.Level)
	}
	return resp.Level, nil
}

func (c *Client) Health(ctx context.Context) error {
	var resp dto.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return fmt.Errorf("health: %w", err)
	}
	if !resp.OK {
		return fmt.Errorf("health: server reported not ok")
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr dto.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
