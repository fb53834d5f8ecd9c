package sellerControllers

import (
	"net/http"

	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/api"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/auth"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/config"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/middleware"
	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/seller/login
//
// The seller is one shared credential from configuration, not a user row.
func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Email and password are required"))
			return
		}

		if req.Email != cfg.Seller.Email || req.Password != cfg.Seller.Password {
			api.Abort(c, api.NewError(http.StatusUnauthorized, "Invalid credentials"))
			return
		}

		token, err := auth.IssueSellerToken(cfg.JWTSecret, req.Email)
		if err != nil {
			api.Abort(c, err)
			return
		}
		auth.SetSessionCookie(c, middleware.SellerCookie, token, cfg.IsProduction())

		api.OK(c, http.StatusOK, nil, "Seller login successful")
	}
}

// GET /api/seller/is-auth
func IsAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		api.OK(c, http.StatusOK, nil, "Seller authenticated")
	}
}

// GET /api/seller/logout
func Logout(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.ClearSessionCookie(c, middleware.SellerCookie, cfg.IsProduction())
		api.OK(c, http.StatusOK, nil, "Seller logged out successfully")
	}
}
