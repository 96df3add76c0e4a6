package server

import (
	"github.com/labstack/echo/v4"

	"github.com/lattice-kg/lattice/internal/server/middleware"
	"github.com/lattice-kg/lattice/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Graph routes
	apiRoutes.GET("/graphs", routes.GetGraphsHandler)
	apiRoutes.POST("/graphs/reload", routes.ReloadGraphsHandler)
	apiRoutes.POST("/graphs/:name/search", routes.SearchGraphHandler)
	apiRoutes.GET("/graphs/:name/entities/:id", routes.GetEntityContextHandler)
	apiRoutes.POST("/graphs/:name/traverse", routes.TraverseGraphHandler)

	// Query routes
	apiRoutes.POST("/graphs/:name/query", routes.QueryGraphHandler)
	apiRoutes.POST("/graphs/:name/stream", routes.QueryGraphStreamHandler)
}
