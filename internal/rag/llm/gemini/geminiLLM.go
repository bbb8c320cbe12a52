package gemini

import (
	"context"
	"errors"

	"github.com/tkonda/AgentAPI/internal/config"
	"github.com/tkonda/AgentAPI/internal/domain/chatModel"
	"github.com/tkonda/AgentAPI/internal/rag/llm"
	"github.com/tkonda/AgentAPI/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
	logger    *logger_i.Logger
}

// New builds a Gemini-backed provider. The client is injected into callers
// rather than shared through package state so tests can substitute fakes.
func New(ctx context.Context, apikey string, modelName string) (llm.Provider, error) {
	logger := logger_i.NewLogger("llm_gemini")
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
		return nil, err
	}
	logger.Info("Gemini client created", "model", modelName)
	return &llmClient{client: c, modelName: modelName, logger: logger}, nil
}

func (c *llmClient) Chat(ctx context.Context, system string, history []chatModel.Message, user string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.LLMCallTimeout)
	defer cancel()

	contents := toContents(history, user)
	result, err := c.client.Models.GenerateContent(
		callCtx,
		c.modelName,
		contents,
		&genai.GenerateContentConfig{
			SystemInstruction: systemContent(system),
		},
	)
	if err != nil {
		c.logger.Error("Gemini generation failed", "error", err)
		return "", err
	}
	text := result.Text()
	if text == "" {
		return "", errors.New("empty model response")
	}
	return text, nil
}

func (c *llmClient) ChatStructured(ctx context.Context, system string, user string, schema llm.Schema) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.LLMCallTimeout)
	defer cancel()

	result, err := c.client.Models.GenerateContent(
		callCtx,
		c.modelName,
		genai.Text(user),
		&genai.GenerateContentConfig{
			SystemInstruction: systemContent(system),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    toResponseSchema(schema),
		},
	)
	if err != nil {
		c.logger.Error("Gemini structured generation failed", "error", err)
		return "", err
	}
	text := result.Text()
	if text == "" {
		return "", errors.New("empty model response")
	}
	return text, nil
}

func systemContent(system string) *genai.Content {
	return &genai.Content{
		Parts: []*genai.Part{
			{Text: system},
		},
	}
}

func toContents(history []chatModel.Message, user string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		role := genai.RoleUser
		if m.Role == chatModel.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: user}},
	})
	return contents
}

func toResponseSchema(schema llm.Schema) *genai.Schema {
	properties := make(map[string]*genai.Schema, len(schema.Fields))
	required := make([]string, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		properties[f.Name] = &genai.Schema{
			Type: genai.TypeString,
			Enum: f.Enum,
		}
		required = append(required, f.Name)
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: properties,
		Required:   required,
	}
}
