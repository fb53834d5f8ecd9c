package contactControllers

import (
	"net/http"

	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/api"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateMessageRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// POST /api/contact
func Create(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Name, email and message are required"))
			return
		}

		message := models.Message{Name: req.Name, Email: req.Email, Message: req.Message}
		if err := db.Create(&message).Error; err != nil {
			api.Abort(c, err)
			return
		}

		api.OK(c, http.StatusCreated, gin.H{"message": message}, "Message saved successfully")
	}
}
