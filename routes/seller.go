package routes

import (
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/config"
	sellerControllers "github.com/Shivam-Gusain1999/Pahadi-Bazaar/controllers/seller"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupSellerRoutes registers all "/api/seller/*" endpoints.
func SetupSellerRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	sellerGroup := api.Group("/seller")
	{
		sellerGroup.POST("/login", sellerControllers.Login(cfg))
		sellerGroup.GET("/is-auth", middleware.AuthSeller(cfg), sellerControllers.IsAuth())
		sellerGroup.GET("/logout", middleware.AuthSeller(cfg), sellerControllers.Logout(cfg))
	}
}
