package openai

import (
	"sync"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/lattice-kg/lattice/pkg/ai"
)

// TextOpenAIClient implements ai.TextClient against an OpenAI-compatible
// chat completion API. It covers the two collaborator roles the retrieval
// engine needs: query rewriting (structured output) and answer generation.
//
// A TextOpenAIClient should be created using NewTextOpenAIClient.
type TextOpenAIClient struct {
	rewriteModel string
	answerModel  string

	chatURL string
	chatKey string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewTextOpenAIClientParams defines the configuration for creating a new
// TextOpenAIClient.
//
// RewriteModel is used for query rewriting, AnswerModel for answer
// generation. ChatURL may point at any OpenAI-compatible endpoint; when
// empty the official API is used.
type NewTextOpenAIClientParams struct {
	RewriteModel string
	AnswerModel  string

	ChatURL string
	ChatKey string
}

// NewTextOpenAIClient creates a new client configured with the provided
// parameters.
//
// Example:
//
//	client := openai.NewTextOpenAIClient(openai.NewTextOpenAIClientParams{
//		RewriteModel: "gpt-4o-mini",
//		AnswerModel:  "gpt-4o",
//		ChatKey:      os.Getenv("OPENAI_API_KEY"),
//	})
func NewTextOpenAIClient(params NewTextOpenAIClientParams) *TextOpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(params.ChatKey),
	}
	if params.ChatURL != "" {
		opts = append(opts, option.WithBaseURL(params.ChatURL))
	}
	client := openai.NewClient(opts...)

	return &TextOpenAIClient{
		rewriteModel: params.RewriteModel,
		answerModel:  params.AnswerModel,
		chatURL:      params.ChatURL,
		chatKey:      params.ChatKey,
		ChatClient:   &client,
	}
}

func (c *TextOpenAIClient) modifyMetrics(delta ai.ModelMetrics) {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()

	c.metrics.InputTokens += delta.InputTokens
	c.metrics.OutputTokens += delta.OutputTokens
	c.metrics.TotalTokens += delta.TotalTokens
	c.metrics.DurationMs += delta.DurationMs
}

// ResetMetrics clears the accumulated usage metrics.
func (c *TextOpenAIClient) ResetMetrics() {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	c.metrics = ai.ModelMetrics{}
}

// GetMetrics returns the accumulated usage metrics.
func (c *TextOpenAIClient) GetMetrics() ai.ModelMetrics {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	return c.metrics
}
