package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/flowfactory-backend/internal/config"
	"github.com/yungbote/flowfactory-backend/internal/logger"
	"github.com/yungbote/flowfactory-backend/internal/observability"
)

// GenerateRequest is a single prompt round-trip. JSONMode asks the backend for
// a machine-parseable object response where the backend supports it.
type GenerateRequest struct {
	System      string
	User        string
	Temperature float64
	JSONMode    bool
}

// GenerationClient abstracts "send prompt text, receive response text". Stage
// services depend only on this; the concrete backend is picked by config.
type GenerationClient interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

func NewGenerationClient(cfg *config.Config, log *logger.Logger) (GenerationClient, error) {
	var (
		client GenerationClient
		err    error
	)
	switch cfg.GenerationBackend {
	case "openai":
		client, err = NewOpenAIGenerationClient(cfg, log)
	case "coze":
		client, err = NewCozeGenerationClient(cfg, log)
	default:
		return nil, fmt.Errorf("unknown generation backend %q", cfg.GenerationBackend)
	}
	if err != nil {
		return nil, err
	}
	return &measuredGenerationClient{inner: client, backend: cfg.GenerationBackend}, nil
}

type measuredGenerationClient struct {
	inner   GenerationClient
	backend string
}

func (m *measuredGenerationClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	start := time.Now()
	out, err := m.inner.Generate(ctx, req)
	observability.ObserveGeneration(m.backend, start, err)
	return out, err
}
