package summarizer

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSummarizer is a mock implementation of Summarizer using testify/mock.
type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	args := m.Called(ctx, transcript)
	return args.String(0), args.Error(1)
}

func (m *MockSummarizer) Name() string {
	return "mock"
}
