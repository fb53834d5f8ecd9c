package routes

import (
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/config"
	addressControllers "github.com/Shivam-Gusain1999/Pahadi-Bazaar/controllers/address"
	cartControllers "github.com/Shivam-Gusain1999/Pahadi-Bazaar/controllers/cart"
	contactControllers "github.com/Shivam-Gusain1999/Pahadi-Bazaar/controllers/contact"
	couponControllers "github.com/Shivam-Gusain1999/Pahadi-Bazaar/controllers/coupon"
	reviewControllers "github.com/Shivam-Gusain1999/Pahadi-Bazaar/controllers/review"
	wishlistControllers "github.com/Shivam-Gusain1999/Pahadi-Bazaar/controllers/wishlist"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupStoreRoutes registers cart, address, wishlist, review, coupon and
// contact endpoints.
func SetupStoreRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authUser := middleware.AuthUser(cfg)
	authSeller := middleware.AuthSeller(cfg)

	api.POST("/cart/update", authUser, cartControllers.Update(db))

	addressGroup := api.Group("/address", authUser)
	{
		addressGroup.POST("/add", addressControllers.Add(db))
		addressGroup.GET("/get", addressControllers.List(db))
	}

	wishlistGroup := api.Group("/wishlist", authUser)
	{
		wishlistGroup.GET("", wishlistControllers.Get(db))
		wishlistGroup.POST("/add", wishlistControllers.Add(db))
		wishlistGroup.POST("/toggle", wishlistControllers.Toggle(db))
		wishlistGroup.DELETE("/remove/:productId", wishlistControllers.Remove(db))
	}

	reviewGroup := api.Group("/review")
	{
		reviewGroup.GET("/product/:productId", reviewControllers.ForProduct(db))
		reviewGroup.GET("/rating/:productId", reviewControllers.Rating(db))
		reviewGroup.POST("/add", authUser, reviewControllers.Add(db))
		reviewGroup.GET("/my-reviews", authUser, reviewControllers.Mine(db))
		reviewGroup.DELETE("/:reviewId", authUser, reviewControllers.Delete(db))
	}

	couponGroup := api.Group("/coupon")
	{
		couponGroup.GET("/active", couponControllers.Active(db))
		couponGroup.POST("/apply", authUser, couponControllers.Apply(db))
		couponGroup.POST("/create", authSeller, couponControllers.Create(db))
		couponGroup.GET("/all", authSeller, couponControllers.All(db))
		couponGroup.DELETE("/:couponId", authSeller, couponControllers.Delete(db))
		couponGroup.PATCH("/toggle/:couponId", authSeller, couponControllers.Toggle(db))
	}

	api.POST("/contact", contactControllers.Create(db))
}
