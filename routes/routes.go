package routes

import (
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/config"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/controllers/payment"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup registers every endpoint. The Stripe webhook hangs off the engine
// root; everything else lives under /api.
func Setup(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	r.POST("/stripe", payment.StripeWebhook(db, cfg))

	apiGroup := r.Group("/api")
	SetupUserRoutes(apiGroup, db, cfg)
	SetupSellerRoutes(apiGroup, db, cfg)
	SetupProductRoutes(apiGroup, db, cfg)
	SetupOrderRoutes(apiGroup, db, cfg)
	SetupStoreRoutes(apiGroup, db, cfg)
}
