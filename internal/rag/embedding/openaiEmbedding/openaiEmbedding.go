package openaiEmbedding

import (
	"context"
	"errors"

	gopenai "github.com/sashabaranov/go-openai"
	"github.com/tkonda/AgentAPI/internal/config"
	"github.com/tkonda/AgentAPI/internal/rag/embedding"
	"github.com/tkonda/AgentAPI/pkg/logger_i"
)

type client struct {
	api       *gopenai.Client
	model     gopenai.EmbeddingModel
	dimension int32
	logger    *logger_i.Logger
}

func New(apikey string, modelName string, dimension int32) (embedding.Embedder, error) {
	if apikey == "" {
		return nil, errors.New("openai api key is empty")
	}
	logger := logger_i.NewLogger("openai_embedding")
	logger.Info("OpenAI Embedding client created", "model", modelName, "dimension", dimension)
	return &client{
		api:       gopenai.NewClient(apikey),
		model:     gopenai.EmbeddingModel(modelName),
		dimension: dimension,
		logger:    logger,
	}, nil
}

func (c *client) Dimension() int32 { return c.dimension }

func (c *client) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.EmbeddingCallTimeout)
	defer cancel()

	resp, err := c.api.CreateEmbeddings(callCtx, gopenai.EmbeddingRequest{
		Input:      texts,
		Model:      c.model,
		Dimensions: int(c.dimension),
	})
	if err != nil {
		c.logger.Error("Error getting Embeddings from OpenAI", "error", err)
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, errors.New("embedding count does not match input count")
	}
	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}
