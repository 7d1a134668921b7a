package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"platepal/internal/config"
	"platepal/internal/logger"
	"platepal/internal/mealplan"
	"platepal/internal/preferences"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	healthPath       = "/health"
	mealPlanPath     = "/chatbot/meal-plan"
	quickSuggestPath = "/chatbot/quick-suggest"

	// DefaultGenerateError is shown when a failed generate call carries no usable message.
	DefaultGenerateError = "Failed to generate meal plan"
)

var (
	// ErrUnhealthy is returned when the health probe fails.
	ErrUnhealthy = errors.New("nutrition server unhealthy")
	// ErrSuggestion wraps every quick-suggest failure.
	ErrSuggestion = errors.New("quick suggestion failed")
)

// RequestError is a failed generate call. Message is safe to show to the user.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Client talks to the nutrition server.
type Client interface {
	CheckHealth(ctx context.Context) error
	GenerateMealPlan(ctx context.Context, req preferences.MealPlanRequest) (*mealplan.Result, error)
	QuickSuggest(ctx context.Context, message string) (mealplan.SuggestionList, error)
}

// apiClient is the JSON-over-HTTP implementation of Client.
type apiClient struct {
	httpClient *http.Client
	baseURL    string
	tokens     *tokenSource
}

// NewClient creates a client rooted at cfg.APIBaseURL.
func NewClient(cfg *config.Config) Client {
	c := &apiClient{
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		baseURL:    cfg.APIBaseURL,
	}
	if cfg.APISecret != "" {
		c.tokens = newTokenSource(cfg.APISecret)
	}
	return c
}

// CheckHealth succeeds on any 2xx answer from the health endpoint.
func (c *apiClient) CheckHealth(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, healthPath, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnhealthy, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if !isSuccess(resp.StatusCode) {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// GenerateMealPlan posts the request and returns the "data" field of the
// response without validating its shape.
func (c *apiClient) GenerateMealPlan(ctx context.Context, req preferences.MealPlanRequest) (*mealplan.Result, error) {
	resp, err := c.do(ctx, http.MethodPost, mealPlanPath, req)
	if err != nil {
		return nil, &RequestError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Status: resp.StatusCode, Message: fmt.Sprintf("failed to read response: %v", err), Err: err}
	}

	if !isSuccess(resp.StatusCode) {
		return nil, &RequestError{Status: resp.StatusCode, Message: errorMessage(body)}
	}

	if !json.Valid(body) {
		return nil, &RequestError{Status: resp.StatusCode, Message: "failed to decode response: body is not JSON"}
	}

	// Any JSON body is a result; fields of the wrong shape come back empty.
	result := &mealplan.Result{}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if json.Unmarshal(body, &envelope) == nil && len(envelope.Data) > 0 {
		_ = result.UnmarshalJSON(envelope.Data)
	}
	return result, nil
}

// QuickSuggest posts free text and returns the server's tips.
func (c *apiClient) QuickSuggest(ctx context.Context, message string) (mealplan.SuggestionList, error) {
	resp, err := c.do(ctx, http.MethodPost, quickSuggestPath, map[string]string{"message": message})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSuggestion, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", ErrSuggestion, resp.StatusCode)
	}

	var envelope struct {
		Data struct {
			Suggestions mealplan.SuggestionList `json:"suggestions"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrSuggestion, err)
	}
	return envelope.Data.Suggestions, nil
}

func (c *apiClient) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to sign request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, err
	}

	logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))
	return resp, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// errorMessage extracts the "error" field of a failure body.
func errorMessage(body []byte) string {
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		return DefaultGenerateError
	}
	return errResp.Error
}
