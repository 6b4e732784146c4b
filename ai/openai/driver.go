package openai

import (
	"context"
	"log/slog"
	"os"

	"github.com/nexxia-ai/meetingprep/ai"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	OpenAIBaseURL     = "https://api.openai.com/v1"
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
)

func NewModel(modelName string, apiKey string, baseURLs ...string) *ai.Model {
	url := OpenAIBaseURL
	if len(baseURLs) > 0 && baseURLs[0] != "" {
		url = baseURLs[0]
	}

	if apiKey == "" {
		switch url {
		case OpenRouterBaseURL:
			apiKey = os.Getenv("OPENROUTER_API_KEY")
			if apiKey == "" {
				slog.Error("OPENROUTER_API_KEY is not set")
			}
		default:
			apiKey = os.Getenv("OPENAI_API_KEY")
			if apiKey == "" {
				slog.Error("OPENAI_API_KEY is not set")
			}
		}
	}

	model := &ai.Model{
		ModelName: modelName,
		APIKey:    apiKey,
		BaseURL:   url,
	}
	model.SetCallFunc(openaiGenerate)
	return model
}

func openaiGenerate(ctx context.Context, model *ai.Model, messages []ai.Message) (ai.AIMessage, error) {
	client := createClient(model)
	return callChatAPI(ctx, client, model, messages)
}

func createClient(model *ai.Model) openai.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(model.APIKey),
	}

	if model.BaseURL != "" && model.BaseURL != OpenAIBaseURL {
		opts = append(opts, option.WithBaseURL(model.BaseURL))
	}

	return openai.NewClient(opts...)
}
