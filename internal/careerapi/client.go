package careerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vedika48/career-compass/internal/domain"
)

// Client talks to the remote career-assistance backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Intentionally no client timeout: the contract is one attempt per
		// call with no retry and no cancellation beyond ctx propagation.
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Login exchanges credentials for a session token and user record.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns a session token and user record.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProfile replaces mutable profile fields and returns the updated user.
func (c *Client) UpdateProfile(ctx context.Context, token string, req ProfileUpdate) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPut, "/api/user/profile", token, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SendMessage submits a chat message and returns the assistant envelope.
func (c *Client) SendMessage(ctx context.Context, token string, req ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat/message", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchJobs runs a job search for the given filters.
func (c *Client) SearchJobs(ctx context.Context, token string, filters domain.JobFilters) (*JobSearchResponse, error) {
	var resp JobSearchResponse
	if err := c.do(ctx, http.MethodPost, "/api/jobs/search", token, filters, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PredictSalary requests a salary prediction for the given attributes.
func (c *Client) PredictSalary(ctx context.Context, token string, req SalaryPredictRequest) (*SalaryPredictResponse, error) {
	var resp SalaryPredictResponse
	if err := c.do(ctx, http.MethodPost, "/api/salary/predict", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CompareSalaries requests base salaries for a title across locations.
func (c *Client) CompareSalaries(ctx context.Context, token string, req SalaryComparisonRequest) (*SalaryComparisonResponse, error) {
	var resp SalaryComparisonResponse
	if err := c.do(ctx, http.MethodPost, "/api/salary/comparison", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BuildResume submits the accumulated resume form for optimization.
func (c *Client) BuildResume(ctx context.Context, token string, req ResumeBuildRequest) (*ResumeBuildResponse, error) {
	var resp ResumeBuildResponse
	if err := c.do(ctx, http.MethodPost, "/api/resume/build", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// errorEnvelope covers both error body shapes the backend emits.
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Debug("failed to close response body", "path", path, "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope errorEnvelope
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil {
			if envelope.Error != "" {
				apiErr.Message = envelope.Error
			} else if envelope.Message != "" {
				apiErr.Message = envelope.Message
			}
		}
		c.logger.Warn("backend call failed", "method", method, "path", path, "status", resp.StatusCode)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
