package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-market/internal/service"
)

// Ключи gin.Context, под которыми хэндлеры находят
// идентификатор и роль текущего пользователя.
const (
	ContextUserIDKey = "userID"
	ContextRoleKey   = "role"
)

const bearerPrefix = "Bearer "

// AuthMiddleware извлекает access токен из заголовка Authorization,
// проверяет подпись и кладёт идентификатор и роль пользователя
// в контекст запроса. Запрос без валидного токена обрывается с 401.
func AuthMiddleware(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, found := strings.CutPrefix(c.GetHeader("Authorization"), bearerPrefix)
		if !found || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
			return
		}

		userID, role, err := tokens.ParseAccess(raw)
		if err != nil || userID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "токен невалиден"})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextRoleKey, role)
		c.Next()
	}
}
