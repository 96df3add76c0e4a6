package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lattice-kg/lattice/internal/queue"
	"github.com/lattice-kg/lattice/internal/server/middleware"
	"github.com/lattice-kg/lattice/pkg/logger"
)

// ReloadGraphsHandler rebuilds every graph from its sources. With a message
// queue configured the request is broadcast so all replicas swap together;
// without one only this replica reloads. Either way the current graphs stay
// live until their replacements are fully built.
func ReloadGraphsHandler(c echo.Context) error {
	type reloadResponse struct {
		Message string   `json:"message"`
		Graphs  []string `json:"graphs,omitempty"`
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	requestedBy := ""
	if user := c.(*middleware.AppContext).User; user != nil {
		requestedBy = user.Subject
	}

	if app.Queue != nil {
		err := queue.PublishReload(app.Queue, queue.ReloadMsg{
			Message:     "Reload requested via API",
			RequestedBy: requestedBy,
		})
		if err != nil {
			logger.Error("[Server] failed to broadcast reload", "err", err)
			return c.JSON(http.StatusInternalServerError, reloadResponse{
				Message: "Internal server error",
			})
		}
		return c.JSON(http.StatusAccepted, reloadResponse{
			Message: "Reload requested",
		})
	}

	if err := app.Registry.Reload(ctx); err != nil {
		return graphError(c, err)
	}

	return c.JSON(http.StatusOK, reloadResponse{
		Message: "Reloaded",
		Graphs:  app.Registry.Names(),
	})
}
