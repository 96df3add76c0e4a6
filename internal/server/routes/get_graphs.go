package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lattice-kg/lattice/internal/server/middleware"
)

// GetGraphsHandler lists every loaded graph with its size and the entity
// and relationship types it contains.
func GetGraphsHandler(c echo.Context) error {
	type graphInfo struct {
		Name              string   `json:"name"`
		Entities          int      `json:"entities"`
		Relationships     int      `json:"relationships"`
		EntityTypes       []string `json:"entity_types"`
		RelationshipTypes []string `json:"relationship_types"`
	}

	type getGraphsResponse struct {
		Message string      `json:"message"`
		Graphs  []graphInfo `json:"graphs"`
	}

	registry := c.(*middleware.AppContext).App.Registry

	infos := make([]graphInfo, 0)
	for _, name := range registry.Names() {
		g, err := registry.Graph(name)
		if err != nil {
			// removed by a concurrent reload, skip
			continue
		}
		infos = append(infos, graphInfo{
			Name:              name,
			Entities:          g.EntityCount(),
			Relationships:     g.RelationshipCount(),
			EntityTypes:       g.EntityTypes(),
			RelationshipTypes: g.RelationshipTypes(),
		})
	}

	return c.JSON(http.StatusOK, getGraphsResponse{
		Message: "OK",
		Graphs:  infos,
	})
}
