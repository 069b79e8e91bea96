package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration, read once at startup.
type Config struct {
	// Server
	Port            int           `env:"PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// LLMProvider selects the summarizer: "huggingface" (hosted inference) or "openai" (chat completion).
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"huggingface"`

	// Hugging Face
	HuggingFaceKey string `env:"HUGGING_FACE_API_KEY"`
	HuggingFaceURL string `env:"HUGGING_FACE_API_URL" envDefault:"https://api-inference.huggingface.co/models/facebook/bart-large-cnn"`

	// OpenAI. An empty key falls back to the client's own OPENAI_API_KEY lookup.
	OpenAIKey     string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
