package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAISummarizer calls the OpenAI Chat Completions API.
type OpenAISummarizer struct {
	model  openai.ChatModel
	client *openai.Client
}

const (
	summaryMaxTokens = 200
	systemPrompt     = "You are a helpful assistant that creates concise summaries."
)

// NewOpenAISummarizer builds a chat-completion summarizer. An empty apiKey or baseURL
// leaves the client's own discovery (OPENAI_API_KEY, OPENAI_BASE_URL) in charge.
func NewOpenAISummarizer(apiKey string, model openai.ChatModel, baseURL string) (*OpenAISummarizer, error) {
	if model == "" {
		model = openai.ChatModelGPT3_5Turbo
	}
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	cli := openai.NewClient(opts...)
	return &OpenAISummarizer{
		model:  model,
		client: &cli,
	}, nil
}

func (s *OpenAISummarizer) Name() string { return string(ProviderOpenAI) }

// Model returns the chat model used for completions.
func (s *OpenAISummarizer) Model() openai.ChatModel { return s.model }

func (s *OpenAISummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if s == nil || s.client == nil {
		return "", fmt.Errorf("nil openai summarizer")
	}
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     s.model,
		Messages:  buildMessages(systemPrompt, "Summarize the following transcript:\n\n"+transcript),
		MaxTokens: openai.Int(summaryMaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", ErrUnexpectedShape)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildMessages(system, user string) []openai.ChatCompletionMessageParamUnion {
	return []openai.ChatCompletionMessageParamUnion{
		{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(system),
				},
			},
		},
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: openai.String(user),
				},
			},
		},
	}
}
