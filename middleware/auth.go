package middleware

import (
	"errors"
	"net/http"

	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/api"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Cookie names for the two independent token namespaces.
const (
	UserCookie   = "token"
	SellerCookie = "sellerToken"
)

// ContextUserID is the gin context key the authenticated user id is stored
// under.
const ContextUserID = "userID"

func parseToken(tokenString, secret string) (jwt.MapClaims, *api.Error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, api.NewError(http.StatusUnauthorized, "Token expired, please login again")
		}
		return nil, api.NewError(http.StatusUnauthorized, "Invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, api.NewError(http.StatusUnauthorized, "Invalid token")
	}
	return claims, nil
}

// AuthUser verifies the customer session cookie and puts the user id on the
// context.
func AuthUser(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(UserCookie)
		if err != nil || tokenString == "" {
			api.Abort(c, api.NewError(http.StatusUnauthorized, "Please login to continue"))
			return
		}

		claims, apiErr := parseToken(tokenString, cfg.JWTSecret)
		if apiErr != nil {
			api.Abort(c, apiErr)
			return
		}

		id, ok := claims["id"].(string)
		if !ok || id == "" {
			api.Abort(c, api.NewError(http.StatusUnauthorized, "Invalid token"))
			return
		}

		c.Set(ContextUserID, id)
		c.Next()
	}
}

// AuthSeller verifies the seller session cookie. The embedded email must
// match the configured seller identity; the seller is a single shared
// account, not a role on user rows.
func AuthSeller(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SellerCookie)
		if err != nil || tokenString == "" {
			api.Abort(c, api.NewError(http.StatusUnauthorized, "Seller authentication required"))
			return
		}

		claims, apiErr := parseToken(tokenString, cfg.JWTSecret)
		if apiErr != nil {
			api.Abort(c, apiErr)
			return
		}

		email, _ := claims["email"].(string)
		if email != cfg.Seller.Email {
			api.Abort(c, api.NewError(http.StatusForbidden, "Not authorized as seller"))
			return
		}

		c.Next()
	}
}

// UserID reads the authenticated user id set by AuthUser.
func UserID(c *gin.Context) string {
	id, _ := c.Get(ContextUserID)
	s, _ := id.(string)
	return s
}
