package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lattice-kg/lattice/pkg/graph"
)

// SearchGraphHandler scores the graph's entities against a free-text query
// and returns the best matches.
func SearchGraphHandler(c echo.Context) error {
	type searchRequest struct {
		Query string `json:"query" validate:"required"`
		Limit int    `json:"limit"`
		Type  string `json:"type"`
	}

	type searchResponse struct {
		Message string               `json:"message"`
		Results []graph.SearchResult `json:"results"`
	}

	data := new(searchRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, searchResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, searchResponse{
			Message: "Invalid request body",
		})
	}

	g, err := currentGraph(c)
	if err != nil {
		return graphError(c, err)
	}

	limit := data.Limit
	if limit == 0 {
		limit = graph.DefaultSearchLimit
	}

	results, err := g.Search(data.Query, limit, data.Type)
	if err != nil {
		return graphError(c, err)
	}

	return c.JSON(http.StatusOK, searchResponse{
		Message: "OK",
		Results: results,
	})
}
