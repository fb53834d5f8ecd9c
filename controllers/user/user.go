package userControllers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/api"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/auth"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/config"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/middleware"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenExpiry = 30 * time.Minute

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/user/register
func Register(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Name, email and password are required"))
			return
		}

		var existing models.User
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			api.Abort(c, api.NewError(http.StatusConflict, "User already exists with this email"))
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			api.Abort(c, err)
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			api.Abort(c, err)
			return
		}

		user := models.User{
			ID:        uuid.NewString(),
			Name:      req.Name,
			Email:     req.Email,
			Password:  string(hashed),
			CartItems: models.CartMap{},
			Wishlist:  models.IDList{},
		}
		if err := db.Create(&user).Error; err != nil {
			api.Abort(c, err)
			return
		}

		if err := issueSession(c, cfg, user.ID); err != nil {
			api.Abort(c, err)
			return
		}

		api.OK(c, http.StatusCreated, gin.H{"email": user.Email, "name": user.Name}, "User registered successfully")
	}
}

// POST /api/user/login
func Login(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Email and password are required"))
			return
		}

		// Unknown email, OAuth-only account and wrong password all get the
		// same message so the response carries no user-distinguishing
		// information.
		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Abort(c, api.NewError(http.StatusUnauthorized, "Invalid email or password"))
				return
			}
			api.Abort(c, err)
			return
		}

		if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
			api.Abort(c, api.NewError(http.StatusUnauthorized, "Invalid email or password"))
			return
		}

		if err := issueSession(c, cfg, user.ID); err != nil {
			api.Abort(c, err)
			return
		}

		api.OK(c, http.StatusOK, gin.H{"email": user.Email, "name": user.Name}, "Login successful")
	}
}

func issueSession(c *gin.Context, cfg *config.Config, userID string) error {
	token, err := auth.IssueUserToken(cfg.JWTSecret, userID)
	if err != nil {
		return err
	}
	auth.SetSessionCookie(c, middleware.UserCookie, token, cfg.IsProduction())
	return nil
}

// GET /api/user/is-auth
func IsAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", middleware.UserID(c)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Abort(c, api.NewError(http.StatusNotFound, "User not found"))
				return
			}
			api.Abort(c, err)
			return
		}
		api.OK(c, http.StatusOK, user, "User authenticated")
	}
}

// GET /api/user/logout
func Logout(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.ClearSessionCookie(c, middleware.UserCookie, cfg.IsProduction())
		api.OK(c, http.StatusOK, nil, "Logged out successfully")
	}
}

// GET /api/user/profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", middleware.UserID(c)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Abort(c, api.NewError(http.StatusNotFound, "User not found"))
				return
			}
			api.Abort(c, err)
			return
		}
		api.OK(c, http.StatusOK, gin.H{"user": user}, "Profile fetched successfully")
	}
}

type UpdateProfileRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
}

// PUT /api/user/profile
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Invalid profile payload"))
			return
		}

		updates := map[string]interface{}{}
		if req.Name != "" {
			updates["name"] = req.Name
		}
		if req.Phone != "" {
			updates["phone"] = req.Phone
		}
		if req.Avatar != "" {
			updates["avatar"] = req.Avatar
		}

		var user models.User
		if err := db.First(&user, "id = ?", middleware.UserID(c)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Abort(c, api.NewError(http.StatusNotFound, "User not found"))
				return
			}
			api.Abort(c, err)
			return
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				api.Abort(c, err)
				return
			}
		}

		api.OK(c, http.StatusOK, gin.H{"user": user}, "Profile updated successfully")
	}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// PUT /api/user/change-password
func ChangePassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Current password and new password are required"))
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", middleware.UserID(c)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Abort(c, api.NewError(http.StatusNotFound, "User not found"))
				return
			}
			api.Abort(c, err)
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
			api.Abort(c, api.NewError(http.StatusUnauthorized, "Current password is incorrect"))
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			api.Abort(c, err)
			return
		}
		if err := db.Model(&user).Update("password", string(hashed)).Error; err != nil {
			api.Abort(c, err)
			return
		}

		api.OK(c, http.StatusOK, nil, "Password changed successfully")
	}
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /api/user/forgot-password
//
// Responds identically whether or not the email exists. The raw token is
// only echoed back in development; delivery is an external collaborator.
func ForgotPassword(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Email is required"))
			return
		}

		const msg = "If email exists, reset link will be sent"

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.OK(c, http.StatusOK, nil, msg)
				return
			}
			api.Abort(c, err)
			return
		}

		raw := make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			api.Abort(c, err)
			return
		}
		resetToken := hex.EncodeToString(raw)
		hashed := sha256.Sum256([]byte(resetToken))
		expiry := time.Now().Add(resetTokenExpiry)

		if err := db.Model(&user).Updates(map[string]interface{}{
			"reset_password_token":  hex.EncodeToString(hashed[:]),
			"reset_password_expiry": expiry,
		}).Error; err != nil {
			api.Abort(c, err)
			return
		}

		var data gin.H
		if !cfg.IsProduction() {
			data = gin.H{"resetToken": resetToken}
		}
		api.OK(c, http.StatusOK, data, msg)
	}
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// POST /api/user/reset-password/:token
func ResetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "New password is required"))
			return
		}

		hashed := sha256.Sum256([]byte(c.Param("token")))

		var user models.User
		err := db.Where("reset_password_token = ? AND reset_password_expiry > ?",
			hex.EncodeToString(hashed[:]), time.Now()).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Abort(c, api.NewError(http.StatusBadRequest, "Invalid or expired reset token"))
				return
			}
			api.Abort(c, err)
			return
		}

		newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			api.Abort(c, err)
			return
		}
		if err := db.Model(&user).Updates(map[string]interface{}{
			"password":              string(newHash),
			"reset_password_token":  "",
			"reset_password_expiry": nil,
		}).Error; err != nil {
			api.Abort(c, err)
			return
		}

		api.OK(c, http.StatusOK, nil, "Password reset successfully")
	}
}
