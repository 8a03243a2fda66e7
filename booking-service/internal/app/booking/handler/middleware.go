package handler

import (
	"net/http"
	"slices"
	"strings"

	cataloghttp "staybook/booking-service/internal/app/booking/infrastructure/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
	ctxRole   = "role_name"
)

// JWTClaims - claims токена провайдера идентификации.
// Гость определяется user_id, а при его отсутствии - sub
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	RoleName string `json:"role_name"`
	jwt.RegisteredClaims
}

func (c *JWTClaims) guestID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// AuthMiddleware - адаптер провайдера идентификации: Bearer токен -> идентификатор гостя
type AuthMiddleware struct {
	secret []byte
	parser *jwt.Parser
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		secret: []byte(jwtSecret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortWith(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		claims := &JWTClaims{}
		token, err := m.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			abortWith(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		guestID := claims.guestID()
		if guestID == "" {
			abortWith(c, http.StatusUnauthorized, "Invalid user ID in token")
			return
		}

		c.Set(ctxUserID, guestID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, claims.RoleName)
		c.Next()
	}
}

// RequireRole пропускает только перечисленные роли, ставится после Authenticate
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ctxRole)
		if role == "" {
			abortWith(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if !slices.Contains(roles, role) {
			abortWith(c, http.StatusForbidden, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" || token == "" {
		return "", false
	}
	return token, true
}

func abortWith(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// propagateRequestID передает request_id из логгера в контекст запросов к каталогу
func propagateRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if requestID := c.GetString("request_id"); requestID != "" {
			c.Request = c.Request.WithContext(cataloghttp.WithRequestID(c.Request.Context(), requestID))
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(ctxUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
