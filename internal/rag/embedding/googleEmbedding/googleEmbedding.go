package googleEmbedding

import (
	"context"
	"errors"
	"time"

	"github.com/tkonda/AgentAPI/internal/config"
	"github.com/tkonda/AgentAPI/internal/rag/embedding"
	"github.com/tkonda/AgentAPI/pkg/logger_i"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type client struct {
	genAi     *genai.Client
	model     string
	dimension int32
	logger    *logger_i.Logger
}

func New(ctx context.Context, modelName string, apikey string, dimension int32) (embedding.Embedder, error) {
	logger := logger_i.NewLogger("google_embedding")
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Google Embedding client:", "error", err)
		return nil, err
	}
	logger.Info("Google Embedding client created", "model", modelName, "dimension", dimension)
	return &client{genAi: c, model: modelName, dimension: dimension, logger: logger}, nil
}

func (c *client) Dimension() int32 { return c.dimension }

func (c *client) Embed(ctx context.Context, text string) ([]float32, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.EmbeddingCallTimeout)
	defer cancel()

	result, err := c.doCall(callCtx, genai.Text(text))
	if err != nil {
		c.logger.Error("Error getting Embedding from Google", "error", err)
		return nil, err
	}
	if len(result.Embeddings) == 0 {
		return nil, errors.New("no embedding in response")
	}
	return result.Embeddings[0].Values, nil
}

func (c *client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.EmbeddingCallTimeout)
	defer cancel()

	res, err := c.doCall(callCtx, getContent(texts))
	if err != nil && isRateLimited(err) {
		c.logger.Warn("Rate limit hit, retrying batch once", "error", err)
		select {
		case <-time.After(config.EmbeddingRetryBackoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		retryCtx, retryCancel := context.WithTimeout(ctx, config.EmbeddingCallTimeout)
		defer retryCancel()
		res, err = c.doCall(retryCtx, getContent(texts))
	}
	if err != nil {
		c.logger.Error("Error getting batch Embeddings from Google", "error", err)
		return nil, err
	}
	if len(res.Embeddings) != len(texts) {
		return nil, errors.New("embedding count does not match input count")
	}
	vectors := make([][]float32, 0, len(res.Embeddings))
	for _, r := range res.Embeddings {
		vectors = append(vectors, r.Values)
	}
	return vectors, nil
}

func (c *client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, content, &genai.EmbedContentConfig{
		OutputDimensionality: &c.dimension,
		TaskType:             "RETRIEVAL_DOCUMENT",
	})
}

func isRateLimited(err error) bool {
	if s, ok := status.FromError(err); ok {
		return s.Code() == codes.ResourceExhausted
	}
	return false
}

func getContent(texts []string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, &genai.Content{Parts: []*genai.Part{{Text: t}}})
	}
	return contents
}
