package base

import (
	"context"
	"fmt"
	"strings"

	"github.com/lattice-kg/lattice/internal/util"
	"github.com/lattice-kg/lattice/pkg/ai"
	"github.com/lattice-kg/lattice/pkg/graph"
	"github.com/lattice-kg/lattice/pkg/logger"
)

// rewriteIntent is the structured output of the query-rewrite step.
type rewriteIntent struct {
	Keywords   string `json:"keywords" jsonschema_description:"Short keyword query of 2-6 words extracted from the question"`
	TypeFilter string `json:"type_filter" jsonschema_description:"Entity type to restrict the search to, empty for no restriction"`
	Depth      int    `json:"depth" jsonschema_description:"Traversal depth, 1 for direct lookups, 2 for indirect connections"`
}

// rewriteQuery turns the conversational question into a keyword search
// intent. Rewriting is best effort: when the model fails, the raw question
// is used as the keyword query with a depth of 1.
func (c *BaseQueryClient) rewriteQuery(ctx context.Context, question string) rewriteIntent {
	prompt := fmt.Sprintf(
		ai.RewritePrompt,
		strings.Join(c.graph.EntityTypes(), ", "),
		strings.Join(c.graph.RelationshipTypes(), ", "),
		question,
	)

	var intent rewriteIntent
	err := util.RetryErrWithContext(ctx, c.options.MaxRewriteTries, func(ctx context.Context) error {
		return c.aiClient.GenerateCompletionWithFormat(
			ctx,
			"search_intent",
			"Keyword query extracted from a user question",
			prompt,
			&intent,
			c.generateOpts()...,
		)
	})
	if err != nil {
		logger.Warn("[Query] rewrite failed, searching with raw question", "err", err)
		return rewriteIntent{Keywords: question, Depth: 1}
	}

	if strings.TrimSpace(intent.Keywords) == "" {
		intent.Keywords = question
	}
	if intent.Depth < 1 {
		intent.Depth = 1
	}
	if intent.Depth > 2 {
		intent.Depth = 2
	}
	return intent
}

// retrieveContext runs the retrieval pipeline for one question: rewrite,
// entity search, neighborhood assembly, optional traversal from the best
// match, and deterministic formatting. The empty string signals that no
// relevant entity was found.
func (c *BaseQueryClient) retrieveContext(ctx context.Context, question string) (string, error) {
	intent := c.rewriteQuery(ctx, question)

	results, err := c.graph.Search(intent.Keywords, c.options.SearchLimit, intent.TypeFilter)
	if err != nil {
		return "", err
	}
	if len(results) == 0 && intent.Keywords != question {
		// the rewrite may have overshot, fall back to the raw question
		results, err = c.graph.Search(question, c.options.SearchLimit, "")
		if err != nil {
			return "", err
		}
	}
	if len(results) == 0 {
		return "", nil
	}

	contexts := make([]*graph.EntityContext, 0, len(results))
	for _, result := range results {
		ec, err := c.graph.EntityContext(result.Entity.ID)
		if err != nil {
			return "", err
		}
		contexts = append(contexts, ec)
	}

	formatter := graph.Formatter{
		Encoder:   c.options.Encoder,
		MaxTokens: c.options.MaxContextTokens,
	}

	text, err := formatter.FormatContexts(contexts)
	if err != nil {
		return "", err
	}

	if intent.Depth > 1 {
		steps, err := c.graph.Traverse(results[0].Entity.ID, intent.Depth, nil)
		if err != nil {
			return "", err
		}
		traversal, err := formatter.FormatTraversal(steps)
		if err != nil {
			return "", err
		}
		traversal = strings.TrimPrefix(traversal, graph.ContextHeader)
		text += "\nConnections from " + results[0].Entity.Name + ":\n\n" + traversal
	}

	return text, nil
}
