package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/nexxia-ai/meetingprep/ai"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"
)

func callChatAPI(ctx context.Context, client openai.Client, model *ai.Model, messages []ai.Message) (ai.AIMessage, error) {
	params := buildChatParams(model, messages)

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return ai.AIMessage{}, wrapAPIError(err)
	}

	if len(resp.Choices) == 0 {
		return ai.AIMessage{}, fmt.Errorf("empty completion response from %s", model.ModelName)
	}

	return ai.AIMessage{
		Role:    ai.AssistantRole,
		Content: resp.Choices[0].Message.Content,
	}, nil
}

func buildChatParams(model *ai.Model, messages []ai.Message) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(model.ModelName),
		Messages: toChatMessages(messages),
	}

	if model.Temperature != nil {
		params.Temperature = openai.Opt(*model.Temperature)
	}
	if model.MaxTokens != nil {
		params.MaxTokens = openai.Opt(int64(*model.MaxTokens))
	}
	if model.TopP != nil {
		params.TopP = openai.Opt(*model.TopP)
	}

	return params
}

func toChatMessages(messages []ai.Message) []openai.ChatCompletionMessageParamUnion {
	chatMsgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, message := range messages {
		switch msg := message.(type) {
		case ai.SystemMessage:
			chatMsgs = append(chatMsgs, openai.SystemMessage(msg.Content))
		case ai.UserMessage:
			chatMsgs = append(chatMsgs, openai.UserMessage(msg.Content))
		case ai.AIMessage:
			chatMsgs = append(chatMsgs, openai.AssistantMessage(msg.Content))
		default:
			_, content := message.Value()
			chatMsgs = append(chatMsgs, openai.UserMessage(content))
		}
	}
	return chatMsgs
}

func wrapAPIError(err error) error {
	var apiErr interface {
		StatusCode() int
	}
	if errors.As(err, &apiErr) {
		return ai.StatusError{
			StatusCode:   apiErr.StatusCode(),
			Status:       http.StatusText(apiErr.StatusCode()),
			ErrorMessage: err.Error(),
		}
	}
	return err
}
