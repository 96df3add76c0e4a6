package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lattice-kg/lattice/internal/server/middleware"
	"github.com/lattice-kg/lattice/internal/util"
	"github.com/lattice-kg/lattice/pkg/ai"
	"github.com/lattice-kg/lattice/pkg/logger"
	"github.com/lattice-kg/lattice/pkg/query"
	bqc "github.com/lattice-kg/lattice/pkg/query/base"
)

type queryGraphRequest struct {
	Messages  []ai.ChatMessage `json:"messages" validate:"required"`
	Model     string           `json:"model"`
	Think     bool             `json:"think"`
	Limit     int              `json:"limit"`
	MaxTokens int              `json:"max_tokens"`
}

func queryOptions(data *queryGraphRequest) []bqc.QueryOption {
	opts := []bqc.QueryOption{}
	if data.Model != "" {
		opts = append(opts, bqc.WithModel(data.Model))
	}
	if data.Think {
		opts = append(opts, bqc.WithThinking("medium"))
	}
	if data.Limit > 0 {
		opts = append(opts, bqc.WithSearchLimit(data.Limit))
	}

	maxTokens := data.MaxTokens
	if maxTokens == 0 {
		maxTokens = int(util.GetEnvNumeric("QUERY_MAX_CONTEXT_TOKENS", 0))
	}
	if maxTokens > 0 {
		opts = append(opts, bqc.WithMaxContextTokens(maxTokens))
	}
	return opts
}

// QueryGraphHandler answers a natural-language question against the graph.
func QueryGraphHandler(c echo.Context) error {
	type queryGraphResponse struct {
		Message string           `json:"message"`
		Metrics *ai.ModelMetrics `json:"metrics,omitempty"`
	}

	data := new(queryGraphRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, queryGraphResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, queryGraphResponse{
			Message: "Invalid request body",
		})
	}

	g, err := currentGraph(c)
	if err != nil {
		return graphError(c, err)
	}

	ctx := c.Request().Context()
	aiClient := c.(*middleware.AppContext).App.AiClient
	var queryClient query.GraphQueryClient = bqc.NewGraphQueryClient(aiClient, g, queryOptions(data)...)

	answer, err := queryClient.Query(ctx, data.Messages)
	if err != nil || answer == "" {
		logger.Error("[Query] graph query failed", "graph", c.Param("name"), "err", err)
		return c.JSON(http.StatusInternalServerError, queryGraphResponse{
			Message: "Internal server error",
		})
	}

	metrics := aiClient.GetMetrics()
	return c.JSON(http.StatusOK, queryGraphResponse{
		Message: answer,
		Metrics: &metrics,
	})
}

// QueryGraphStreamHandler answers a question against the graph, streaming
// progress steps and content chunks as newline-delimited JSON.
func QueryGraphStreamHandler(c echo.Context) error {
	type streamResponse struct {
		Step      string           `json:"step,omitempty"`
		Message   string           `json:"message"`
		Reasoning string           `json:"reasoning,omitempty"`
		Metrics   *ai.ModelMetrics `json:"metrics,omitempty"`
	}

	data := new(queryGraphRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, streamResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, streamResponse{
			Message: "Invalid request body",
		})
	}

	g, err := currentGraph(c)
	if err != nil {
		return graphError(c, err)
	}

	ctx := c.Request().Context()
	aiClient := c.(*middleware.AppContext).App.AiClient
	var queryClient query.GraphQueryClient = bqc.NewGraphQueryClient(aiClient, g, queryOptions(data)...)

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c.Response().WriteHeader(http.StatusOK)

	enc := json.NewEncoder(c.Response())

	contentChan, err := queryClient.QueryStream(ctx, data.Messages)
	if err != nil {
		enc.Encode(streamResponse{
			Message: "Internal server error",
		})
		c.Response().Flush()
		return nil
	}

	var messageBuffer strings.Builder
	var reasoningBuffer strings.Builder

	for event := range contentChan {
		if event.Type == "step" {
			resp := streamResponse{
				Step:    event.Step,
				Message: messageBuffer.String(),
			}
			if event.Step == "thinking" && event.Reasoning != "" {
				reasoningBuffer.WriteString(event.Reasoning)
			}
			if reasoningBuffer.Len() > 0 {
				resp.Reasoning = reasoningBuffer.String()
			}
			if err := enc.Encode(resp); err != nil {
				return err
			}
			c.Response().Flush()
			continue
		}

		messageBuffer.WriteString(event.Content)
		if err := enc.Encode(streamResponse{
			Message: messageBuffer.String(),
		}); err != nil {
			return err
		}
		c.Response().Flush()
	}

	metrics := aiClient.GetMetrics()
	if err := enc.Encode(streamResponse{
		Step:    "done",
		Message: messageBuffer.String(),
		Metrics: &metrics,
	}); err != nil {
		return err
	}
	c.Response().Flush()

	return nil
}
