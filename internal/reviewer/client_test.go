package reviewer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BerylCAtieno/thumbnail-review-api/internal/models"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/utils"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://api.reviewer.test/v1"

func newTestClient(t *testing.T, opts Options) (Reviewer, *httpmock.MockTransport) {
	t.Helper()

	transport := httpmock.NewMockTransport()
	opts.BaseURL = testBaseURL
	opts.APIKey = "sk-test"
	opts.HTTPClient = &http.Client{Transport: transport}
	if opts.AssistantID == "" {
		opts.AssistantID = "asst_test"
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = time.Millisecond
	}

	return NewClient(opts, utils.NewDiscardLogger()), transport
}

func registerConversation(t *testing.T, transport *httpmock.MockTransport, statuses []string, messages any) {
	t.Helper()

	transport.RegisterResponder(http.MethodPost, testBaseURL+"/threads",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{"id": "thread_1"}))

	transport.RegisterResponder(http.MethodPost, testBaseURL+"/threads/thread_1/messages",
		func(req *http.Request) (*http.Response, error) {
			var msg messageRequest
			if err := json.NewDecoder(req.Body).Decode(&msg); err != nil {
				return httpmock.NewStringResponse(http.StatusBadRequest, err.Error()), nil
			}
			assert.Equal(t, "user", msg.Role)
			return httpmock.NewJsonResponse(http.StatusOK, map[string]any{"id": "msg_x"})
		})

	transport.RegisterResponder(http.MethodPost, testBaseURL+"/threads/thread_1/runs",
		func(req *http.Request) (*http.Response, error) {
			var body runRequest
			_ = json.NewDecoder(req.Body).Decode(&body)
			assert.Equal(t, "asst_test", body.AssistantID)
			return httpmock.NewJsonResponse(http.StatusOK, map[string]any{"id": "run_1", "status": "queued"})
		})

	var polls int32
	transport.RegisterResponder(http.MethodGet, testBaseURL+"/threads/thread_1/runs/run_1",
		func(*http.Request) (*http.Response, error) {
			n := int(atomic.AddInt32(&polls, 1)) - 1
			if n >= len(statuses) {
				n = len(statuses) - 1
			}
			return httpmock.NewJsonResponse(http.StatusOK, map[string]any{"id": "run_1", "status": statuses[n]})
		})

	transport.RegisterResponder(http.MethodGet, testBaseURL+"/threads/thread_1/messages",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, messages))

	transport.RegisterResponder(http.MethodPost, testBaseURL+"/threads/thread_1/runs/run_1/cancel",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{"id": "run_1", "status": "cancelling"}))
}

func assistantMessages(texts ...string) map[string]any {
	data := []map[string]any{}
	for _, text := range texts {
		data = append(data, map[string]any{
			"id":   "msg_a",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": map[string]any{"value": text}},
			},
		})
	}
	data = append(data, map[string]any{
		"id":   "msg_u",
		"role": "user",
		"content": []map[string]any{
			{"type": "text", "text": map[string]any{"value": "Transcription of the text - Result: fake"}},
		},
	})
	return map[string]any{"data": data}
}

func TestReview_Success(t *testing.T) {
	c, transport := newTestClient(t, Options{MaxPolls: 10})
	registerConversation(t, transport,
		[]string{"queued", "in_progress", "completed"},
		assistantMessages("Result: Approved\nReason: N/A\nWarnings/Recommendations: none"))

	out, err := c.Review(context.Background(), ReviewInput{FileID: "file_1", Transcription: "Quit at 25"})
	require.NoError(t, err)

	assert.Equal(t, "file_1", out.FileID)
	assert.Equal(t, "thread_1", out.ThreadID)
	assert.Equal(t, "run_1", out.RunID)
	assert.True(t, strings.HasPrefix(out.Verdict, "Result: Approved"))
	assert.Len(t, out.Transcript, 2)

	calls := transport.GetCallCountInfo()
	assert.Equal(t, 3, calls["POST "+testBaseURL+"/threads/thread_1/messages"])
	assert.Equal(t, 3, calls["GET "+testBaseURL+"/threads/thread_1/runs/run_1"])
}

func TestReview_RunFailed(t *testing.T) {
	c, transport := newTestClient(t, Options{MaxPolls: 10})
	registerConversation(t, transport, []string{"in_progress", "failed"}, assistantMessages())

	_, err := c.Review(context.Background(), ReviewInput{FileID: "file_1", Transcription: "x"})
	assert.ErrorIs(t, err, ErrRunFailed)
}

func TestReview_PollBudgetExhausted(t *testing.T) {
	c, transport := newTestClient(t, Options{MaxPolls: 3})
	registerConversation(t, transport, []string{"in_progress"}, assistantMessages())

	_, err := c.Review(context.Background(), ReviewInput{FileID: "file_1", Transcription: "x"})
	assert.ErrorIs(t, err, ErrRunTimeout)
	assert.Contains(t, err.Error(), "after 3 polls")

	calls := transport.GetCallCountInfo()
	assert.Equal(t, 3, calls["GET "+testBaseURL+"/threads/thread_1/runs/run_1"])
	assert.Equal(t, 1, calls["POST "+testBaseURL+"/threads/thread_1/runs/run_1/cancel"])
}

func TestReview_RunTimeout(t *testing.T) {
	c, transport := newTestClient(t, Options{
		MaxPolls:     1000,
		PollInterval: 5 * time.Millisecond,
		RunTimeout:   30 * time.Millisecond,
	})
	registerConversation(t, transport, []string{"queued"}, assistantMessages())

	_, err := c.Review(context.Background(), ReviewInput{FileID: "file_1", Transcription: "x"})
	assert.ErrorIs(t, err, ErrRunTimeout)
	assert.Contains(t, err.Error(), "after 30ms")
}

func TestReview_SinglePollBudget(t *testing.T) {
	c, transport := newTestClient(t, Options{MaxPolls: 1})
	registerConversation(t, transport, []string{"queued"}, assistantMessages())

	_, err := c.Review(context.Background(), ReviewInput{FileID: "file_1", Transcription: "x"})
	assert.ErrorIs(t, err, ErrRunTimeout)
	assert.Equal(t, 1, transport.GetCallCountInfo()["GET "+testBaseURL+"/threads/thread_1/runs/run_1"])
}

func TestReview_NoVerdict(t *testing.T) {
	c, transport := newTestClient(t, Options{MaxPolls: 10})
	registerConversation(t, transport, []string{"completed"},
		assistantMessages("Please provide the transcription of the thumbnail."))

	_, err := c.Review(context.Background(), ReviewInput{FileID: "file_1", Transcription: "x"})
	assert.ErrorIs(t, err, ErrNoVerdict)
}

func TestReview_RequiresAssistant(t *testing.T) {
	c := NewClient(Options{APIKey: "k"}, utils.NewDiscardLogger())

	_, err := c.Review(context.Background(), ReviewInput{FileID: "file_1"})
	assert.Error(t, err)
}

func TestSelectVerdict(t *testing.T) {
	text := func(role string, parts ...models.MessageContent) models.ThreadMessage {
		return models.ThreadMessage{Role: role, Content: parts}
	}
	part := func(s string) models.MessageContent {
		return models.MessageContent{Type: "text", Text: &models.TextValue{Value: s}}
	}
	image := models.MessageContent{Type: "image_file", ImageFile: &models.ImageFile{FileID: "f"}}

	msgs := []models.ThreadMessage{
		text("user", part("Result: from user")),
		text("assistant", image, part("Let me look at the guidelines.")),
		text("assistant", image, part("Result: Rejected\nReason: nudity")),
		text("assistant", part("Result: older answer")),
	}

	got, ok := SelectVerdict(msgs)
	assert.True(t, ok)
	assert.Equal(t, "Result: Rejected\nReason: nudity", got)

	_, ok = SelectVerdict(msgs[:2])
	assert.False(t, ok)

	_, ok = SelectVerdict(nil)
	assert.False(t, ok)
}

func TestUploadFile(t *testing.T) {
	c, transport := newTestClient(t, Options{})

	transport.RegisterResponder(http.MethodPost, testBaseURL+"/files",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Bearer sk-test", req.Header.Get("Authorization"))
			assert.Equal(t, "assistants=v2", req.Header.Get("OpenAI-Beta"))

			require.NoError(t, req.ParseMultipartForm(1<<20))
			assert.Equal(t, PurposeVision, req.FormValue("purpose"))

			f, header, err := req.FormFile("file")
			require.NoError(t, err)
			defer f.Close()
			data, _ := io.ReadAll(f)
			assert.Equal(t, "thumb.png", header.Filename)
			assert.Equal(t, "png-bytes", string(data))

			return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
				"id": "file_9", "filename": "thumb.png", "purpose": "vision", "bytes": 9,
			})
		})

	file, err := c.UploadFile(context.Background(), "thumb.png", []byte("png-bytes"), PurposeVision)
	require.NoError(t, err)
	assert.Equal(t, "file_9", file.ID)
	assert.Equal(t, int64(9), file.Bytes)
}

func TestUploadFile_MissingID(t *testing.T) {
	c, transport := newTestClient(t, Options{})

	transport.RegisterResponder(http.MethodPost, testBaseURL+"/files",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{"filename": "thumb.png", "purpose": "vision"}))

	file, err := c.UploadFile(context.Background(), "thumb.png", []byte("png-bytes"), PurposeVision)
	require.Error(t, err)
	assert.Nil(t, file)
	assert.Contains(t, err.Error(), "no file id")
}

func TestAPIError(t *testing.T) {
	c, transport := newTestClient(t, Options{})

	transport.RegisterResponder(http.MethodDelete, testBaseURL+"/assistants/asst_missing",
		httpmock.NewJsonResponderOrPanic(http.StatusNotFound, map[string]any{
			"error": map[string]any{"message": "No assistant found", "type": "invalid_request_error"},
		}))

	_, err := c.DeleteAssistant(context.Background(), "asst_missing")
	require.Error(t, err)
	assert.True(t, IsAPIStatus(err, http.StatusNotFound))
	assert.Contains(t, err.Error(), "No assistant found")
}

func TestListAssistants(t *testing.T) {
	c, transport := newTestClient(t, Options{})

	transport.RegisterResponder(http.MethodGet, testBaseURL+"/assistants",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "desc", req.URL.Query().Get("order"))
			assert.Equal(t, "20", req.URL.Query().Get("limit"))
			return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
				"data": []map[string]any{{"id": "asst_1", "name": "checker", "model": "gpt-4o"}},
			})
		})

	list, err := c.ListAssistants(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "asst_1", list[0].ID)
}

func TestCreateAssistant(t *testing.T) {
	c, transport := newTestClient(t, Options{})

	transport.RegisterResponder(http.MethodPost, testBaseURL+"/assistants",
		func(req *http.Request) (*http.Response, error) {
			var params AssistantParams
			require.NoError(t, json.NewDecoder(req.Body).Decode(&params))
			assert.Equal(t, "checker", params.Name)
			assert.Equal(t, "gpt-4o", params.Model)
			return httpmock.NewJsonResponse(http.StatusOK, map[string]any{"id": "asst_new", "name": params.Name})
		})

	a, err := c.CreateAssistant(context.Background(), AssistantParams{Name: "checker", Model: "gpt-4o", Instructions: "be strict"})
	require.NoError(t, err)
	assert.Equal(t, "asst_new", a.ID)
}

func TestListAndDeleteFiles(t *testing.T) {
	c, transport := newTestClient(t, Options{})

	transport.RegisterResponder(http.MethodGet, testBaseURL+"/files",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
			"data": []map[string]any{{"id": "file_1"}, {"id": "file_2"}},
		}))
	transport.RegisterResponder(http.MethodDelete, testBaseURL+"/files/file_1",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{"id": "file_1", "deleted": true}))

	files, err := c.ListFiles(context.Background())
	require.NoError(t, err)
	assert.Len(t, files, 2)

	status, err := c.DeleteFile(context.Background(), "file_1")
	require.NoError(t, err)
	assert.True(t, status.Deleted)
}
