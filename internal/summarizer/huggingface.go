package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

// DefaultHuggingFaceURL is the hosted BART summarization model.
const DefaultHuggingFaceURL = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"

// maxErrorBody caps how much of a failed response ends up in StatusError.
const maxErrorBody = 512

// HuggingFaceSummarizer calls the Hugging Face hosted inference API.
type HuggingFaceSummarizer struct {
	apiURL string
	token  string
	client *http.Client
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// NewHuggingFaceSummarizer builds a summarizer for apiURL. A nil client gets a plain
// http.Client with no timeout; cancellation comes from the caller's context.
func NewHuggingFaceSummarizer(token, apiURL string, client *http.Client) (*HuggingFaceSummarizer, error) {
	if token == "" {
		return nil, fmt.Errorf("api token required")
	}
	if apiURL == "" {
		apiURL = DefaultHuggingFaceURL
	}
	if client == nil {
		client = &http.Client{}
	}
	return &HuggingFaceSummarizer{
		apiURL: apiURL,
		token:  token,
		client: client,
	}, nil
}

func (s *HuggingFaceSummarizer) Name() string { return string(ProviderHuggingFace) }

func (s *HuggingFaceSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if s == nil || s.client == nil {
		return "", fmt.Errorf("nil huggingface summarizer")
	}
	body, err := json.Marshal(inferenceRequest{Inputs: transcript})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("huggingface request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &StatusError{
			Provider:   ProviderHuggingFace,
			StatusCode: resp.StatusCode,
			Body:       string(bytes.TrimSpace(snippet)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return extractSummaryText(data)
}

// extractSummaryText reads summary_text from the first element of the inference
// response. A first element without that field yields FallbackSummary; anything
// that is not a non-empty array of objects is ErrUnexpectedShape.
func extractSummaryText(data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("%w: invalid json", ErrUnexpectedShape)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return "", fmt.Errorf("%w: expected array, got %s", ErrUnexpectedShape, root.Type)
	}
	first := root.Get("0")
	if !first.Exists() {
		return "", fmt.Errorf("%w: empty array", ErrUnexpectedShape)
	}
	if !first.IsObject() {
		return "", fmt.Errorf("%w: first element is %s, not an object", ErrUnexpectedShape, first.Type)
	}
	text := first.Get("summary_text")
	if !text.Exists() {
		return FallbackSummary, nil
	}
	return text.String(), nil
}
