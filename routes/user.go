package routes

import (
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/auth"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/config"
	userControllers "github.com/Shivam-Gusain1999/Pahadi-Bazaar/controllers/user"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/api/user/*" endpoints.
func SetupUserRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	userGroup := api.Group("/user")
	{
		// Public
		userGroup.POST("/register", userControllers.Register(db, cfg))
		userGroup.POST("/login", userControllers.Login(db, cfg))
		userGroup.POST("/forgot-password", userControllers.ForgotPassword(db, cfg))
		userGroup.POST("/reset-password/:token", userControllers.ResetPassword(db))

		// Google OAuth
		userGroup.GET("/google", auth.GoogleAuth(cfg))
		userGroup.GET("/google/callback", auth.GoogleCallback(db, cfg))

		// Protected
		authed := userGroup.Group("")
		authed.Use(middleware.AuthUser(cfg))
		{
			authed.GET("/is-auth", userControllers.IsAuth(db))
			authed.GET("/logout", userControllers.Logout(cfg))
			authed.GET("/profile", userControllers.GetProfile(db))
			authed.PUT("/profile", userControllers.UpdateProfile(db))
			authed.PUT("/change-password", userControllers.ChangePassword(db))
		}
	}
}
