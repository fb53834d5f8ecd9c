package routes

import (
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/config"
	productControllers "github.com/Shivam-Gusain1999/Pahadi-Bazaar/controllers/product"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupProductRoutes registers all "/api/product/*" endpoints.
func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productGroup := api.Group("/product")
	{
		productGroup.GET("/list", productControllers.List(db))
		productGroup.GET("/search", productControllers.Search(db))
		productGroup.GET("/categories", productControllers.Categories(db))
		productGroup.POST("/id", productControllers.ByID(db))

		seller := productGroup.Group("")
		seller.Use(middleware.AuthSeller(cfg))
		{
			seller.POST("/add", productControllers.Add(db, cfg))
			seller.POST("/stock", productControllers.ChangeStock(db))
		}
	}
}
