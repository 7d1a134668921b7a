package app

import (
	"context"

	"platepal/internal/apiclient"
	"platepal/internal/config"
	"platepal/internal/llm"
	"platepal/internal/logger"

	"go.uber.org/zap"
)

// Wire builds an App from the configuration: the nutrition API client plus
// the configured suggestion backend. The returned close function releases
// the backend and is never nil.
func Wire(ctx context.Context, cfg *config.Config) (*App, func() error, error) {
	client := apiclient.NewClient(cfg)
	noop := func() error { return nil }

	switch cfg.SuggestBackend {
	case config.SuggestBackendGemini:
		gemini, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("quick suggestions served by gemini")
		return NewApp(client, llm.NewSuggester(gemini), cfg), gemini.Close, nil
	default:
		logger.Info("quick suggestions served by the nutrition API", zap.String("base_url", cfg.APIBaseURL))
		return NewApp(client, nil, cfg), noop, nil
	}
}
