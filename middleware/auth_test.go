package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal-cms/config"
	"journal-cms/models"
)

// memoryTokenStore is an in-process stand-in for the Redis-backed store.
type memoryTokenStore struct {
	revoked map[string]bool
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{revoked: map[string]bool{}}
}

func (s *memoryTokenStore) Blacklist(_ context.Context, token string, _ time.Duration) error {
	s.revoked[token] = true
	return nil
}

func (s *memoryTokenStore) IsBlacklisted(_ context.Context, token string) bool {
	return s.revoked[token]
}

func signTestToken(t *testing.T, userID uint, username string, role models.UserRole) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     string(role),
		"exp":      now.Add(time.Hour).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JWTSecret)
	require.NoError(t, err)
	return token
}

func newAuthRouter(tokens *memoryTokenStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/profile", AuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": CurrentUser(c).Username})
	})
	router.GET("/peek", OptionalAuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"anonymous": CurrentUser(c) == nil})
	})
	router.GET("/admin", AuthMiddleware(tokens), RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": CurrentUser(c).Username})
	})

	return router
}

func get(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsLoggedOutToken(t *testing.T) {
	tokens := newMemoryTokenStore()
	router := newAuthRouter(tokens)
	token := signTestToken(t, 1, "alice", models.RoleUser)

	w := get(router, "/profile", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "alice")

	// Same token after logout must stop working.
	require.NoError(t, tokens.Blacklist(context.Background(), token, time.Hour))

	w = get(router, "/profile", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
}

func TestAuthMiddlewareRequiresValidBearer(t *testing.T) {
	router := newAuthRouter(newMemoryTokenStore())

	assert.Equal(t, http.StatusUnauthorized, get(router, "/profile", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(router, "/profile", "not-a-jwt").Code)
}

func TestOptionalAuthTreatsLoggedOutTokenAsAnonymous(t *testing.T) {
	tokens := newMemoryTokenStore()
	router := newAuthRouter(tokens)
	token := signTestToken(t, 1, "alice", models.RoleUser)

	w := get(router, "/peek", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anonymous":false`)

	require.NoError(t, tokens.Blacklist(context.Background(), token, time.Hour))

	w = get(router, "/peek", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anonymous":true`)
}

func TestRequireRoleGatesByRole(t *testing.T) {
	tokens := newMemoryTokenStore()
	router := newAuthRouter(tokens)

	userToken := signTestToken(t, 1, "alice", models.RoleUser)
	adminToken := signTestToken(t, 2, "boss", models.RoleAdmin)

	assert.Equal(t, http.StatusUnauthorized, get(router, "/admin", userToken).Code)
	assert.Equal(t, http.StatusOK, get(router, "/admin", adminToken).Code)
}
