package routes

import (
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/config"
	orderControllers "github.com/Shivam-Gusain1999/Pahadi-Bazaar/controllers/order"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers all "/api/order/*" endpoints. The gateway
// webhook is registered separately on the engine root.
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	orderGroup := api.Group("/order")
	{
		orderGroup.POST("/cod", middleware.AuthUser(cfg), orderControllers.PlaceCOD(db))
		orderGroup.POST("/stripe", middleware.AuthUser(cfg), orderControllers.PlaceOnline(db, cfg))
		orderGroup.GET("/user", middleware.AuthUser(cfg), orderControllers.ListForUser(db))
		orderGroup.GET("/seller", middleware.AuthSeller(cfg), orderControllers.ListAll(db))
	}
}
