package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lattice-kg/lattice/pkg/graph"
)

// GetEntityContextHandler returns the one-hop neighborhood of an entity:
// the entity itself plus its outgoing and incoming relationships with the
// connected entities resolved.
func GetEntityContextHandler(c echo.Context) error {
	type entityContextResponse struct {
		Message string               `json:"message"`
		Context *graph.EntityContext `json:"context,omitempty"`
	}

	g, err := currentGraph(c)
	if err != nil {
		return graphError(c, err)
	}

	ec, err := g.EntityContext(c.Param("id"))
	if err != nil {
		return graphError(c, err)
	}

	return c.JSON(http.StatusOK, entityContextResponse{
		Message: "OK",
		Context: ec,
	})
}
