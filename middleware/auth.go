package middleware

import (
	"strings"

	"journal-cms/auth"
	"journal-cms/config"
	"journal-cms/helper"
	"journal-cms/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var HTTPHelper = &helper.HTTPHelper{}

type Claims struct {
	UserID   uint            `json:"user_id"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware requires a valid, non-blacklisted bearer token and stores
// the actor's identity in the context.
func AuthMiddleware(tokens auth.TokenStoreInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, claims, ok := parseBearer(c)
		if !ok {
			c.Abort()
			return
		}

		if tokens != nil && tokens.IsBlacklisted(c.Request.Context(), tokenString) {
			HTTPHelper.SendUnauthorizedError(c, "Token has been logged out", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		setActor(c, tokenString, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the actor when a valid token is presented
// but lets anonymous requests through. Public article visibility depends on
// who is asking.
func OptionalAuthMiddleware(tokens auth.TokenStoreInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.Next()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc)
		if err != nil || !token.Valid {
			c.Next()
			return
		}
		if tokens != nil && tokens.IsBlacklisted(c.Request.Context(), tokenString) {
			c.Next()
			return
		}

		setActor(c, tokenString, claims)
		c.Next()
	}
}

func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			HTTPHelper.SendUnauthorizedError(c, "User role not found", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		role := userRole.(models.UserRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		HTTPHelper.SendUnauthorizedError(c, "Insufficient permissions", HTTPHelper.EmptyJsonMap())
		c.Abort()
	}
}

// CurrentUser rebuilds the actor from the validated claims. Returns nil for
// anonymous requests so it can feed the policy checks directly.
func CurrentUser(c *gin.Context) *models.User {
	userID, exists := c.Get("user_id")
	if !exists {
		return nil
	}

	username, _ := c.Get("username")
	role, _ := c.Get("role")

	return &models.User{
		ID:       userID.(uint),
		Username: username.(string),
		Role:     role.(models.UserRole),
	}
}

// CurrentToken returns the raw bearer token for the request, if any.
func CurrentToken(c *gin.Context) string {
	token, _ := c.Get("token")
	if token == nil {
		return ""
	}
	return token.(string)
}

func parseBearer(c *gin.Context) (string, *Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		HTTPHelper.SendUnauthorizedError(c, "Authorization header required", HTTPHelper.EmptyJsonMap())
		return "", nil, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		HTTPHelper.SendUnauthorizedError(c, "Bearer token required", HTTPHelper.EmptyJsonMap())
		return "", nil, false
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc)
	if err != nil {
		HTTPHelper.SendUnauthorizedError(c, "Invalid token: "+err.Error(), HTTPHelper.EmptyJsonMap())
		return "", nil, false
	}
	if !token.Valid {
		HTTPHelper.SendUnauthorizedError(c, "Token is not valid", HTTPHelper.EmptyJsonMap())
		return "", nil, false
	}

	return tokenString, claims, true
}

func keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrSignatureInvalid
	}
	return config.JWTSecret, nil
}

func setActor(c *gin.Context, tokenString string, claims *Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("role", claims.Role)
	c.Set("token", tokenString)
}
