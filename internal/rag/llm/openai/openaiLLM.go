package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gopenai "github.com/sashabaranov/go-openai"
	"github.com/tkonda/AgentAPI/internal/config"
	"github.com/tkonda/AgentAPI/internal/domain/chatModel"
	"github.com/tkonda/AgentAPI/internal/rag/llm"
	"github.com/tkonda/AgentAPI/pkg/logger_i"
)

type llmClient struct {
	client    *gopenai.Client
	modelName string
	logger    *logger_i.Logger
}

func New(apikey string, modelName string) (llm.Provider, error) {
	if apikey == "" {
		return nil, errors.New("openai api key is empty")
	}
	logger := logger_i.NewLogger("llm_openai")
	logger.Info("OpenAI client created", "model", modelName)
	return &llmClient{
		client:    gopenai.NewClient(apikey),
		modelName: modelName,
		logger:    logger,
	}, nil
}

func (c *llmClient) Chat(ctx context.Context, system string, history []chatModel.Message, user string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.LLMCallTimeout)
	defer cancel()

	messages := make([]gopenai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, gopenai.ChatCompletionMessage{Role: gopenai.ChatMessageRoleSystem, Content: system})
	for _, m := range history {
		role := gopenai.ChatMessageRoleUser
		if m.Role == chatModel.RoleAssistant {
			role = gopenai.ChatMessageRoleAssistant
		}
		messages = append(messages, gopenai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, gopenai.ChatCompletionMessage{Role: gopenai.ChatMessageRoleUser, Content: user})

	resp, err := c.client.CreateChatCompletion(callCtx, gopenai.ChatCompletionRequest{
		Model:    c.modelName,
		Messages: messages,
	})
	if err != nil {
		c.logger.Error("OpenAI generation failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty model response")
	}
	return resp.Choices[0].Message.Content, nil
}

// ChatStructured uses JSON mode; the schema is restated in the system prompt
// since the chat completions API cannot enforce enums by itself.
func (c *llmClient) ChatStructured(ctx context.Context, system string, user string, schema llm.Schema) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.LLMCallTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(callCtx, gopenai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []gopenai.ChatCompletionMessage{
			{Role: gopenai.ChatMessageRoleSystem, Content: system + "\n" + schemaInstruction(schema)},
			{Role: gopenai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &gopenai.ChatCompletionResponseFormat{
			Type: gopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		c.logger.Error("OpenAI structured generation failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty model response")
	}
	return resp.Choices[0].Message.Content, nil
}

func schemaInstruction(schema llm.Schema) string {
	var b strings.Builder
	b.WriteString("Respond with only a JSON object containing the keys:")
	for _, f := range schema.Fields {
		if len(f.Enum) > 0 {
			fmt.Fprintf(&b, " %q (one of: %s)", f.Name, strings.Join(f.Enum, ", "))
		} else {
			fmt.Fprintf(&b, " %q (string)", f.Name)
		}
	}
	return b.String()
}
