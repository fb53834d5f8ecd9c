package cartControllers

import (
	"net/http"

	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/api"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/middleware"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateCartRequest struct {
	CartItems models.CartMap `json:"cartItems"`
}

// POST /api/cart/update
//
// Overwrites the stored cart map wholesale. Concurrent updates from multiple
// tabs are last-write-wins; the payload is stored as-is and unresolvable
// product ids only surface later, skipped at checkout.
func Update(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Invalid cart payload"))
			return
		}
		if req.CartItems == nil {
			req.CartItems = models.CartMap{}
		}

		err := db.Model(&models.User{}).
			Where("id = ?", middleware.UserID(c)).
			Update("cart_items", req.CartItems).Error
		if err != nil {
			api.Abort(c, err)
			return
		}

		api.OK(c, http.StatusOK, nil, "Cart updated successfully")
	}
}
