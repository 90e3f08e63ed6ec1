package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	autherrors "github.com/ZBee-Tech/e-Conges/internal/auth/errors"
	"github.com/ZBee-Tech/e-Conges/internal/domain"
	"github.com/ZBee-Tech/e-Conges/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the session token and stores the actor
// identity claims on the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token", nil)
			c.Abort()
			return
		}

		roleClaim, _ := claims["role"].(string)
		role, ok := domain.ParseRole(roleClaim)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Role not found in token", nil)
			c.Abort()
			return
		}

		organizationID, ok := claims["organization_id"].(string)
		if !ok || organizationID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Organization ID not found in token", nil)
			c.Abort()
			return
		}

		fullName, _ := claims["full_name"].(string)

		c.Set("user_id", userID)
		c.Set("user_id_validated", userID)
		c.Set("role", string(role))
		c.Set("organization_id", organizationID)
		c.Set("full_name", fullName)

		c.Next()
	}
}

// ActorFrom rebuilds the immutable actor value from the context keys set
// by AuthMiddleware. Services only ever see this value, never the
// gin context.
func ActorFrom(c *gin.Context) domain.Actor {
	role, _ := domain.ParseRole(c.GetString("role"))
	return domain.Actor{
		UserID:         c.GetString("user_id"),
		FullName:       c.GetString("full_name"),
		Role:           role,
		OrganizationID: c.GetString("organization_id"),
	}
}
