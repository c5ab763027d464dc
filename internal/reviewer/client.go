package reviewer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/BerylCAtieno/thumbnail-review-api/internal/models"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/utils"
)

const (
	defaultBaseURL      = "https://api.openai.com/v1"
	defaultPollInterval = time.Second
	defaultMaxPolls     = 120
	defaultRunTimeout   = 3 * time.Minute

	// PurposeVision is used for images attached to thread messages.
	PurposeVision = "vision"
	// PurposeAssistants is used for documents attached to assistants.
	PurposeAssistants = "assistants"
)

// Reviewer is the external compliance reviewer.
type Reviewer interface {
	UploadFile(ctx context.Context, filename string, data []byte, purpose string) (*models.RemoteFile, error)
	DeleteFile(ctx context.Context, fileID string) (*models.DeletionStatus, error)
	ListFiles(ctx context.Context) ([]models.RemoteFile, error)
	Review(ctx context.Context, in ReviewInput) (*models.ReviewOutcome, error)
	ListAssistants(ctx context.Context, limit int) ([]models.Assistant, error)
	CreateAssistant(ctx context.Context, params AssistantParams) (*models.Assistant, error)
	DeleteAssistant(ctx context.Context, assistantID string) (*models.DeletionStatus, error)
}

// Options configures the Assistants API client. Zero values select defaults.
type Options struct {
	APIKey       string
	BaseURL      string
	AssistantID  string
	PollInterval time.Duration
	MaxPolls     int
	RunTimeout   time.Duration
	HTTPClient   *http.Client
}

// APIError is a non-2xx answer from the platform.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reviewer API returned status %d: %s", e.StatusCode, e.Message)
}

type client struct {
	apiKey       string
	baseURL      string
	assistantID  string
	pollInterval time.Duration
	maxPolls     int
	runTimeout   time.Duration
	http         *http.Client
	logger       *utils.Logger
}

func NewClient(opts Options, logger *utils.Logger) Reviewer {
	c := &client{
		apiKey:       opts.APIKey,
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		assistantID:  opts.AssistantID,
		pollInterval: opts.PollInterval,
		maxPolls:     opts.MaxPolls,
		runTimeout:   opts.RunTimeout,
		http:         opts.HTTPClient,
		logger:       logger,
	}

	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.pollInterval <= 0 {
		c.pollInterval = defaultPollInterval
	}
	if c.maxPolls <= 0 {
		c.maxPolls = defaultMaxPolls
	}
	if c.runTimeout <= 0 {
		c.runTimeout = defaultRunTimeout
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 60 * time.Second}
	}

	return c
}

type listResponse[T any] struct {
	Data []T `json:"data"`
}

type errorResponse struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (c *client) UploadFile(ctx context.Context, filename string, data []byte, purpose string) (*models.RemoteFile, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if err := w.WriteField("purpose", purpose); err != nil {
		return nil, fmt.Errorf("failed to write purpose field: %w", err)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write file part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	var file models.RemoteFile
	if err := c.send(ctx, http.MethodPost, "/files", w.FormDataContentType(), &body, &file); err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}
	if file.ID == "" {
		return nil, errors.New("failed to upload file: response carried no file id")
	}

	return &file, nil
}

func (c *client) DeleteFile(ctx context.Context, fileID string) (*models.DeletionStatus, error) {
	var status models.DeletionStatus
	if err := c.doJSON(ctx, http.MethodDelete, "/files/"+url.PathEscape(fileID), nil, &status); err != nil {
		return nil, fmt.Errorf("failed to delete file: %w", err)
	}
	return &status, nil
}

func (c *client) ListFiles(ctx context.Context) ([]models.RemoteFile, error) {
	var list listResponse[models.RemoteFile]
	if err := c.doJSON(ctx, http.MethodGet, "/files", nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return list.Data, nil
}

// AssistantParams describes a reviewer configuration to create.
type AssistantParams struct {
	Name         string `json:"name"`
	Model        string `json:"model"`
	Instructions string `json:"instructions"`
}

func (c *client) ListAssistants(ctx context.Context, limit int) ([]models.Assistant, error) {
	q := url.Values{}
	q.Set("order", "desc")
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var list listResponse[models.Assistant]
	if err := c.doJSON(ctx, http.MethodGet, "/assistants?"+q.Encode(), nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list assistants: %w", err)
	}
	return list.Data, nil
}

func (c *client) CreateAssistant(ctx context.Context, params AssistantParams) (*models.Assistant, error) {
	var assistant models.Assistant
	if err := c.doJSON(ctx, http.MethodPost, "/assistants", params, &assistant); err != nil {
		return nil, fmt.Errorf("failed to create assistant: %w", err)
	}
	return &assistant, nil
}

func (c *client) DeleteAssistant(ctx context.Context, assistantID string) (*models.DeletionStatus, error) {
	var status models.DeletionStatus
	if err := c.doJSON(ctx, http.MethodDelete, "/assistants/"+url.PathEscape(assistantID), nil, &status); err != nil {
		return nil, fmt.Errorf("failed to delete assistant: %w", err)
	}
	return &status, nil
}

func (c *client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""

	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(jsonData)
		contentType = "application/json"
	}

	return c.send(ctx, method, path, contentType, body, out)
}

func (c *client) send(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("OpenAI-Beta", "assistants=v2")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("Reviewer API error", "method", method, "path", path, "status", resp.StatusCode, "body", truncate(string(respBody), 500))
		return &APIError{StatusCode: resp.StatusCode, Message: apiErrorMessage(respBody)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

func apiErrorMessage(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error != nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return truncate(strings.TrimSpace(string(body)), 200)
}

// IsAPIStatus reports whether err is an APIError with the given status.
func IsAPIStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
