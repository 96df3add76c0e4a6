package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lattice-kg/lattice/internal/server/middleware"
	"github.com/lattice-kg/lattice/pkg/graph"
	"github.com/lattice-kg/lattice/pkg/logger"
	"github.com/lattice-kg/lattice/pkg/store"
)

// graphError maps engine errors to HTTP responses: unknown graphs and
// entities are 404, rejected arguments are 400, document faults surface as
// 422, everything else is a logged 500.
func graphError(c echo.Context, err error) error {
	var loadErr *graph.LoadError

	switch {
	case errors.Is(err, store.ErrUnknownGraph):
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Unknown graph"})
	case errors.Is(err, graph.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Entity not found"})
	case errors.Is(err, graph.ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid argument"})
	case errors.As(err, &loadErr):
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"message": loadErr.Error()})
	default:
		logger.Error("[Server] request failed", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}
}

// currentGraph resolves the :name path parameter against the registry.
func currentGraph(c echo.Context) (*graph.Graph, error) {
	name := c.Param("name")
	return c.(*middleware.AppContext).App.Registry.Graph(name)
}
