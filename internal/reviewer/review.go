package reviewer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/BerylCAtieno/thumbnail-review-api/internal/models"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/verdict"
	"github.com/sethvargo/go-retry"
)

var (
	// ErrRunFailed means the run reached a terminal status other than completed.
	ErrRunFailed = errors.New("reviewer run did not complete")
	// ErrRunTimeout means the run was still pending when the poll budget ran out.
	ErrRunTimeout = errors.New("reviewer run timed out")
	// ErrNoVerdict means no assistant message carried a result label.
	ErrNoVerdict = errors.New("reviewer returned no verdict")

	errRunPending = errors.New("run pending")
)

const (
	reviewPrompt      = "Review this thumbnail for compliance with the channel guidelines."
	imagePrompt       = "Thumbnail Image File PNG/JPG format"
	transcriptionTmpl = "Transcription of the text - %s"
)

// ReviewInput identifies an uploaded image and the text shown on it.
type ReviewInput struct {
	FileID        string
	Transcription string
}

type thread struct {
	ID string `json:"id"`
}

type run struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	LastError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"last_error"`
}

type messageRequest struct {
	Role    string                  `json:"role"`
	Content []models.MessageContent `json:"content"`
}

type runRequest struct {
	AssistantID string `json:"assistant_id"`
}

func textContent(s string) models.MessageContent {
	return models.MessageContent{Type: "text", Text: &models.TextValue{Value: s}}
}

// Review runs one compliance conversation for an uploaded image and returns
// the verdict text together with the full transcript.
func (c *client) Review(ctx context.Context, in ReviewInput) (*models.ReviewOutcome, error) {
	if c.assistantID == "" {
		return nil, errors.New("no reviewer assistant configured")
	}

	started := time.Now()

	var th thread
	if err := c.doJSON(ctx, http.MethodPost, "/threads", struct{}{}, &th); err != nil {
		return nil, fmt.Errorf("failed to create thread: %w", err)
	}

	messages := []messageRequest{
		{Role: "user", Content: []models.MessageContent{textContent(reviewPrompt)}},
		{Role: "user", Content: []models.MessageContent{
			textContent(imagePrompt),
			{Type: "image_file", ImageFile: &models.ImageFile{FileID: in.FileID}},
		}},
		{Role: "user", Content: []models.MessageContent{textContent(fmt.Sprintf(transcriptionTmpl, in.Transcription))}},
	}
	for _, msg := range messages {
		if err := c.doJSON(ctx, http.MethodPost, "/threads/"+url.PathEscape(th.ID)+"/messages", msg, nil); err != nil {
			return nil, fmt.Errorf("failed to add message: %w", err)
		}
	}

	var r run
	if err := c.doJSON(ctx, http.MethodPost, "/threads/"+url.PathEscape(th.ID)+"/runs", runRequest{AssistantID: c.assistantID}, &r); err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}

	if err := c.waitForRun(ctx, th.ID, r.ID); err != nil {
		return nil, err
	}

	transcript, err := c.listMessages(ctx, th.ID)
	if err != nil {
		return nil, err
	}

	text, ok := SelectVerdict(transcript)
	if !ok {
		return nil, ErrNoVerdict
	}

	elapsed := time.Since(started)
	c.logger.Info("Reviewer run completed", "thread_id", th.ID, "run_id", r.ID, "messages", len(transcript), "elapsed", elapsed)

	return &models.ReviewOutcome{
		FileID:     in.FileID,
		ThreadID:   th.ID,
		RunID:      r.ID,
		Verdict:    text,
		Transcript: transcript,
		Elapsed:    elapsed,
	}, nil
}

// waitForRun polls the run at a fixed interval until it finishes, fails, or
// the poll budget (attempt count and run timeout) is used up.
func (c *client) waitForRun(ctx context.Context, threadID, runID string) error {
	pollCtx, cancel := context.WithTimeout(ctx, c.runTimeout)
	defer cancel()

	path := "/threads/" + url.PathEscape(threadID) + "/runs/" + url.PathEscape(runID)
	// The first attempt is a poll too, so maxPolls polls need maxPolls-1 retries.
	backoff := retry.WithMaxRetries(uint64(c.maxPolls-1), retry.NewConstant(c.pollInterval))

	err := retry.Do(pollCtx, backoff, func(ctx context.Context) error {
		var r run
		if err := c.doJSON(ctx, http.MethodGet, path, nil, &r); err != nil {
			return fmt.Errorf("failed to retrieve run: %w", err)
		}

		switch r.Status {
		case "completed":
			return nil
		case "queued", "in_progress", "cancelling":
			return retry.RetryableError(errRunPending)
		default:
			reason := ""
			if r.LastError != nil {
				reason = r.LastError.Message
			}
			return fmt.Errorf("%w: status %q %s", ErrRunFailed, r.Status, reason)
		}
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, errRunPending):
		c.cancelRun(threadID, runID)
		return fmt.Errorf("%w after %d polls", ErrRunTimeout, c.maxPolls)
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		c.cancelRun(threadID, runID)
		return fmt.Errorf("%w after %s", ErrRunTimeout, c.runTimeout)
	default:
		return err
	}
}

// cancelRun asks the platform to stop a run we gave up on. Failures are only logged.
func (c *client) cancelRun(threadID, runID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	path := "/threads/" + url.PathEscape(threadID) + "/runs/" + url.PathEscape(runID) + "/cancel"
	if err := c.doJSON(ctx, http.MethodPost, path, struct{}{}, nil); err != nil {
		c.logger.Warn("Failed to cancel timed out run", "thread_id", threadID, "run_id", runID, "error", err)
	}
}

func (c *client) listMessages(ctx context.Context, threadID string) ([]models.ThreadMessage, error) {
	var list listResponse[models.ThreadMessage]
	if err := c.doJSON(ctx, http.MethodGet, "/threads/"+url.PathEscape(threadID)+"/messages?order=desc", nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return list.Data, nil
}

// SelectVerdict returns the first assistant text segment, in list order,
// that carries a result label.
func SelectVerdict(messages []models.ThreadMessage) (string, bool) {
	for _, msg := range messages {
		if msg.Role != "assistant" {
			continue
		}
		for _, part := range msg.Content {
			if part.Type != "text" || part.Text == nil {
				continue
			}
			if verdict.HasVerdict(part.Text.Value) {
				return part.Text.Value, true
			}
		}
	}
	return "", false
}
