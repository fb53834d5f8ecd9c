// Package auth issues and clears session tokens and implements the Google
// OAuth login path.
package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry is how long both customer and seller sessions live.
const TokenExpiry = 7 * 24 * time.Hour

// IssueUserToken signs a customer session token embedding the user id.
func IssueUserToken(secret, userID string) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(TokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// IssueSellerToken signs a seller session token embedding the static seller
// email.
func IssueSellerToken(secret, email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(TokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// SetSessionCookie writes an httpOnly session cookie. SameSite policy
// differs between production (None+Secure, the API and SPA live on
// different origins) and development (Strict).
func SetSessionCookie(c *gin.Context, name, token string, production bool) {
	if production {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie(name, token, int(TokenExpiry.Seconds()), "/", "", production, true)
}

// ClearSessionCookie expires a session cookie immediately.
func ClearSessionCookie(c *gin.Context, name string, production bool) {
	if production {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie(name, "", -1, "/", "", production, true)
}
