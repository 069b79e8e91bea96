package summarizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	Messages  []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-3.5-turbo",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	return string(body)
}

func newChatServer(t *testing.T, status int, body string, captured *chatRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if captured != nil {
			_ = json.NewDecoder(r.Body).Decode(captured)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAISummarizeTrimsContent(t *testing.T) {
	var captured chatRequest
	srv := newChatServer(t, http.StatusOK, completionBody(" trimmed text "), &captured)

	s, err := NewOpenAISummarizer("test-key", "gpt-4o-mini", srv.URL+"/v1/")
	require.NoError(t, err)

	got, err := s.Summarize(context.Background(), "the transcript")
	require.NoError(t, err)
	assert.Equal(t, "trimmed text", got)

	assert.Equal(t, "gpt-4o-mini", captured.Model)
	assert.Equal(t, summaryMaxTokens, captured.MaxTokens)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, systemPrompt, captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, "Summarize the following transcript:\n\nthe transcript", captured.Messages[1].Content)
}

func TestOpenAISummarizeNoChoices(t *testing.T) {
	body := `{"id":"chatcmpl-test","object":"chat.completion","created":1700000000,"model":"gpt-3.5-turbo","choices":[]}`
	srv := newChatServer(t, http.StatusOK, body, nil)

	s, err := NewOpenAISummarizer("test-key", "", srv.URL+"/v1/")
	require.NoError(t, err)

	_, err = s.Summarize(context.Background(), "text")
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}

func TestOpenAISummarizePropagatesAPIError(t *testing.T) {
	body := `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`
	srv := newChatServer(t, http.StatusUnauthorized, body, nil)

	s, err := NewOpenAISummarizer("bad-key", "", srv.URL+"/v1/")
	require.NoError(t, err)

	_, err = s.Summarize(context.Background(), "text")
	var apiErr *openai.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestNewOpenAISummarizerDefaultsModel(t *testing.T) {
	s, err := NewOpenAISummarizer("test-key", "", "")
	require.NoError(t, err)
	assert.Equal(t, openai.ChatModelGPT3_5Turbo, s.Model())
	assert.Equal(t, "openai", s.Name())
}
