package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawhaven/pawhaven-v2/backend/internal/api"
	"github.com/pawhaven/pawhaven-v2/backend/internal/middleware"
)

// Handlers collects every route group the API serves.
type Handlers struct {
	Auth         *api.AuthHandler
	Pets         *api.PetHandler
	Applications *api.ApplicationHandler
	Profile      *api.ProfileHandler
	Insights     *api.InsightHandler
	Messages     *api.MessageHandler
	Admin        *api.AdminHandler
}

// SetupRouter configures the application routes.
func SetupRouter(h Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	h.Auth.RegisterRoutes(v1)
	h.Pets.RegisterRoutes(v1)
	h.Applications.RegisterRoutes(v1)
	h.Profile.RegisterRoutes(v1)
	h.Insights.RegisterRoutes(v1)
	h.Messages.RegisterRoutes(v1)
	h.Admin.RegisterRoutes(v1)

	return router
}
