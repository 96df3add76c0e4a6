package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lattice-kg/lattice/pkg/graph"
)

// TraverseGraphHandler walks the graph breadth-first from a seed entity and
// returns the visited entities in discovery order.
func TraverseGraphHandler(c echo.Context) error {
	type traverseRequest struct {
		Seed     string   `json:"seed" validate:"required"`
		MaxDepth int      `json:"max_depth"`
		Types    []string `json:"types"`
	}

	type traverseResponse struct {
		Message string                `json:"message"`
		Steps   []graph.TraversalStep `json:"steps,omitempty"`
	}

	data := new(traverseRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, traverseResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, traverseResponse{
			Message: "Invalid request body",
		})
	}

	g, err := currentGraph(c)
	if err != nil {
		return graphError(c, err)
	}

	steps, err := g.Traverse(data.Seed, data.MaxDepth, graph.TypeFilter(data.Types...))
	if err != nil {
		return graphError(c, err)
	}

	return c.JSON(http.StatusOK, traverseResponse{
		Message: "OK",
		Steps:   steps,
	})
}
