package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexxia-ai/meetingprep/ai"
)

func TestNewModelDefaults(t *testing.T) {
	model := NewModel("gpt-4o-mini", "test-key")

	assert.Equal(t, "gpt-4o-mini", model.ModelName)
	assert.Equal(t, "test-key", model.APIKey)
	assert.Equal(t, OpenAIBaseURL, model.BaseURL)
}

func TestNewModelCustomBaseURL(t *testing.T) {
	model := NewModel("qwen/qwen3-max", "test-key", OpenRouterBaseURL)

	assert.Equal(t, OpenRouterBaseURL, model.BaseURL)
}

func TestBuildChatParams(t *testing.T) {
	model := NewModel("gpt-4o-mini", "test-key").WithTemperature(0.7).WithMaxTokens(2000)

	messages := []ai.Message{
		ai.SystemMessage{Role: ai.SystemRole, Content: "system prompt"},
		ai.UserMessage{Role: ai.UserRole, Content: "user prompt"},
	}

	params := buildChatParams(model, messages)

	assert.Equal(t, "gpt-4o-mini", string(params.Model))
	require.Len(t, params.Messages, 2)
	assert.Equal(t, 0.7, params.Temperature.Value)
	assert.Equal(t, int64(2000), params.MaxTokens.Value)
}

func TestBuildChatParamsOmitsUnsetOptions(t *testing.T) {
	model := NewModel("gpt-4o-mini", "test-key")

	params := buildChatParams(model, []ai.Message{ai.UserMessage{Role: ai.UserRole, Content: "hi"}})

	assert.False(t, params.Temperature.Valid())
	assert.False(t, params.MaxTokens.Valid())
	assert.False(t, params.TopP.Valid())
}
