package routes

import (
	"log"
	"net/http"

	"github.com/FractiqLabs/StockEasy/internal/container"
	"github.com/FractiqLabs/StockEasy/internal/middleware"
	"github.com/FractiqLabs/StockEasy/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes wires middleware and every API route. The session
// middleware runs for the whole API group; per-route Authorize decides
// the required privilege level.
func RegisterRoutes(router *gin.Engine, c *container.Container, logger *zap.Logger) {
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.CORSMiddleware())

	api := router.Group("/api")
	api.Use(security.SessionMiddleware(c.SessionStore))

	c.LoginHandler.RegisterRoutes(api)
	c.EquipmentHandler.RegisterRoutes(api)
	c.FacilityHandler.RegisterRoutes(api)

	RegisterUtilityRoutes(router)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		log.Println("Health check successful")
	})

	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "API is reachable"})
	})
}
