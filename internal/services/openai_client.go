package services

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/config"
	"github.com/yungbote/flowfactory-backend/internal/logger"
)

type openAIGenerationClient struct {
	log    *logger.Logger
	client openai.Client
	model  string
}

func NewOpenAIGenerationClient(cfg *config.Config, log *logger.Logger) (GenerationClient, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.OpenAIAPIKey)}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}
	return &openAIGenerationClient{
		log:    log.With("service", "OpenAIGenerationClient"),
		client: openai.NewClient(opts...),
		model:  cfg.OpenAIModel,
	}, nil
}

func (c *openAIGenerationClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.JSONMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		c.log.Error("Chat completion failed", "error", err, "model", c.model)
		return "", apierr.GenerationFailed(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", apierr.GenerationFailed(errors.New("no response from model"))
	}
	return resp.Choices[0].Message.Content, nil
}
