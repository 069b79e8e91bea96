package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"

	"transcript-summarizer/internal/config"
	"transcript-summarizer/internal/logger"
	"transcript-summarizer/internal/summarizer"
)

// Deps bundles the runtime dependencies handed to HTTP handlers.
type Deps struct {
	Config     config.Config
	Log        *slog.Logger
	Summarizer summarizer.Summarizer
}

// Build loads env, config, and the single summarizer used for the process lifetime.
func Build() (Deps, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Deps{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg := config.Load()
	return BuildFromConfig(cfg, logger.New(cfg.LogLevel))
}

// BuildFromConfig is Build without touching the process environment.
func BuildFromConfig(cfg config.Config, log *slog.Logger) (Deps, error) {
	s, err := buildSummarizer(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize summarizer: %w", err)
	}
	return Deps{
		Config:     cfg,
		Log:        log,
		Summarizer: s,
	}, nil
}

func buildSummarizer(cfg config.Config, log *slog.Logger) (summarizer.Summarizer, error) {
	provider, err := summarizer.ParseProvider(cfg.LLMProvider)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %w", err)
	}
	switch provider {
	case summarizer.ProviderHuggingFace:
		if cfg.HuggingFaceKey == "" {
			return nil, fmt.Errorf("HUGGING_FACE_API_KEY is required when LLM_PROVIDER=huggingface")
		}
		s, err := summarizer.NewHuggingFaceSummarizer(cfg.HuggingFaceKey, cfg.HuggingFaceURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Hugging Face summarizer: %w", err)
		}
		log.Info("using Hugging Face summarizer", "url", cfg.HuggingFaceURL)
		return s, nil
	case summarizer.ProviderOpenAI:
		s, err := summarizer.NewOpenAISummarizer(cfg.OpenAIKey, openai.ChatModel(cfg.OpenAIModel), cfg.OpenAIBaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI summarizer: %w", err)
		}
		log.Info("using OpenAI summarizer", "model", s.Model())
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %s", summarizer.ErrUnknownProvider, provider)
	}
}
