package addressControllers

import (
	"net/http"

	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/api"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/middleware"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddAddressRequest struct {
	Address models.Address `json:"address" binding:"required"`
}

// POST /api/address/add
func Add(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Address details are required"))
			return
		}

		address := req.Address
		address.ID = 0
		address.UserID = middleware.UserID(c)
		if err := db.Create(&address).Error; err != nil {
			api.Abort(c, err)
			return
		}

		api.OK(c, http.StatusCreated, gin.H{"address": address}, "Address added successfully")
	}
}

// GET /api/address/get
func List(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var addresses []models.Address
		if err := db.Where("user_id = ?", middleware.UserID(c)).Find(&addresses).Error; err != nil {
			api.Abort(c, err)
			return
		}
		api.OK(c, http.StatusOK, gin.H{"addresses": addresses}, "Addresses fetched successfully")
	}
}
