package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/optcoach/internal/models"
	"github.com/claude/optcoach/internal/service"
	"github.com/google/uuid"
)

// APIError is a non-200 reply from the optcoach REST API.
type APIError struct {
	Path    string
	Status  int
	Message string
	Details map[string]string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s returned %d: %s", e.Path, e.Status, e.Message)
	if len(e.Details) > 0 {
		parts := make([]string, 0, len(e.Details))
		for field, reason := range e.Details {
			parts = append(parts, field+" "+reason)
		}
		msg += " (" + strings.Join(parts, "; ") + ")"
	}
	return msg
}

// HTTPClient implements Backend by calling the optcoach REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the service runs elsewhere (reached over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies Backend.
var _ Backend = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
// Generation may wait on a language model, so the timeout is generous.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 3 * time.Minute},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, in, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Path: path, Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		var e struct {
			Error   string            `json:"error"`
			Details map[string]string `json:"details"`
		}
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			apiErr.Message = e.Error
			apiErr.Details = e.Details
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) Templates(ctx context.Context) ([]models.ProgramTemplate, error) {
	var out []models.ProgramTemplate
	if err := c.do(ctx, http.MethodGet, "/api/v1/templates", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Preview(ctx context.Context, req service.PreviewRequest) (*service.Preview, error) {
	params := url.Values{}
	if req.Phase != "" {
		params.Set("phase", req.Phase)
	}
	if req.Level != "" {
		params.Set("level", req.Level)
	}
	if req.Split != "" {
		params.Set("split", req.Split)
	}
	var out service.Preview
	path := "/api/v1/templates/" + url.PathEscape(req.TemplateID) + "/preview"
	if err := c.do(ctx, http.MethodGet, path, params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Generate(ctx context.Context, req models.GenerateRequest) (*models.GenerateResponse, error) {
	var out models.GenerateResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/programs/generate", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Program(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	var out models.Program
	if err := c.do(ctx, http.MethodGet, "/api/v1/programs/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CompleteProgram(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	var out models.Program
	if err := c.do(ctx, http.MethodPost, "/api/v1/programs/"+id.String()+"/complete", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Guidelines(ctx context.Context) ([]models.PhaseGuideline, error) {
	var out []models.PhaseGuideline
	if err := c.do(ctx, http.MethodGet, "/api/v1/guidelines", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Exercises(ctx context.Context) ([]models.Exercise, error) {
	var out []models.Exercise
	if err := c.do(ctx, http.MethodGet, "/api/v1/exercises", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
