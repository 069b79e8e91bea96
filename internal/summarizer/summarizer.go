package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Summarizer turns a transcript into a short summary using a remote model.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
	// Name returns the provider identifier, used in logs.
	Name() string
}

// Provider identifies which backend produces summaries.
type Provider string

const (
	ProviderHuggingFace Provider = "huggingface"
	ProviderOpenAI      Provider = "openai"
)

// FallbackSummary is returned when the hosted model answers without a summary field.
const FallbackSummary = "Summary not available."

var (
	// ErrUnknownProvider is returned for an LLM_PROVIDER value that maps to no adapter.
	ErrUnknownProvider = errors.New("unknown LLM provider")
	// ErrUpstreamStatus matches any *StatusError.
	ErrUpstreamStatus = errors.New("upstream returned non-success status")
	// ErrUnexpectedShape means the provider answered 2xx with a body we cannot read a summary from.
	ErrUnexpectedShape = errors.New("unexpected response shape")
)

// ParseProvider normalizes s and maps it to a known Provider.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case ProviderHuggingFace, ProviderOpenAI:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q (valid options: %s, %s)", ErrUnknownProvider, s, ProviderHuggingFace, ProviderOpenAI)
	}
}

// StatusError reports a non-2xx answer from a provider endpoint.
type StatusError struct {
	Provider   Provider
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: http %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: http %d: %s", e.Provider, e.StatusCode, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUpstreamStatus
}
