package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/config"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/middleware"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

func oauthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.BackendURL + "/api/user/google/callback",
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.profile",
			"https://www.googleapis.com/auth/userinfo.email",
		},
		Endpoint: google.Endpoint,
	}
}

// GoogleAuth redirects the browser to the Google consent screen.
func GoogleAuth(cfg *config.Config) gin.HandlerFunc {
	conf := oauthConfig(cfg)
	return func(c *gin.Context) {
		url := conf.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
		c.Redirect(http.StatusTemporaryRedirect, url)
	}
}

// GoogleCallback exchanges the authorization code, verifies the ID token and
// either links the Google subject id to an email-matched account or creates
// a new account, then issues the same customer session cookie local login
// does. Failures redirect back to the storefront rather than rendering an
// API error, since the browser is mid-navigation.
func GoogleCallback(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	conf := oauthConfig(cfg)
	return func(c *gin.Context) {
		code := c.Query("code")
		if code == "" {
			c.Redirect(http.StatusFound, cfg.FrontendURL+"?error=no_code")
			return
		}

		ctx := c.Request.Context()
		tok, err := conf.Exchange(ctx, code)
		if err != nil {
			slog.Error("google oauth exchange failed", "error", err)
			c.Redirect(http.StatusFound, cfg.FrontendURL+"?error=auth_failed")
			return
		}

		rawIDToken, ok := tok.Extra("id_token").(string)
		if !ok {
			c.Redirect(http.StatusFound, cfg.FrontendURL+"?error=auth_failed")
			return
		}

		payload, err := idtoken.Validate(ctx, rawIDToken, cfg.Google.ClientID)
		if err != nil {
			slog.Error("google id token validation failed", "error", err)
			c.Redirect(http.StatusFound, cfg.FrontendURL+"?error=auth_failed")
			return
		}

		googleID := payload.Subject
		email, _ := payload.Claims["email"].(string)
		name, _ := payload.Claims["name"].(string)
		picture, _ := payload.Claims["picture"].(string)

		user, err := upsertGoogleUser(db, googleID, email, name, picture)
		if err != nil {
			slog.Error("google login upsert failed", "error", err)
			c.Redirect(http.StatusFound, cfg.FrontendURL+"?error=auth_failed")
			return
		}

		token, err := IssueUserToken(cfg.JWTSecret, user.ID)
		if err != nil {
			c.Redirect(http.StatusFound, cfg.FrontendURL+"?error=auth_failed")
			return
		}
		SetSessionCookie(c, middleware.UserCookie, token, cfg.IsProduction())

		c.Redirect(http.StatusFound, cfg.FrontendURL)
	}
}

func upsertGoogleUser(db *gorm.DB, googleID, email, name, picture string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("google token carried no email claim")
	}

	var user models.User
	err := db.Where("google_id = ? OR email = ?", googleID, email).First(&user).Error
	switch {
	case err == nil:
		// Link the subject id to an account registered with email first.
		if user.GoogleID == nil {
			updates := map[string]interface{}{
				"google_id":     googleID,
				"auth_provider": models.AuthProviderGoogle,
			}
			if picture != "" && user.Avatar == "" {
				updates["avatar"] = picture
			}
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				return nil, err
			}
		}
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			ID:           uuid.NewString(),
			Name:         name,
			Email:        email,
			Avatar:       picture,
			GoogleID:     &googleID,
			AuthProvider: models.AuthProviderGoogle,
			CartItems:    models.CartMap{},
			Wishlist:     models.IDList{},
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	default:
		return nil, err
	}
}
