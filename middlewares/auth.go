package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/evinas93/Fuji-PoS-sub001/pkg/perm"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware ตรวจ token และ (ถ้ามี) บังคับ permission ผ่าน capability matrix
func AuthMiddleware(secret string, required ...perm.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing or invalid token"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid claims"})
			c.Abort()
			return
		}

		var role string
		if v, ok := claims["role"].(string); ok {
			role = v
		}
		var userId uint
		switch v := claims["userId"].(type) {
		case float64:
			userId = uint(v)
		case int:
			userId = uint(v)
		case int64:
			userId = uint(v)
		case uint:
			userId = v
		}

		c.Set("userId", userId)
		c.Set("role", role)

		for _, p := range required {
			if !perm.Allowed(role, p) {
				c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	// websocket clients ส่ง token ทาง query แทน header
	return c.Query("token")
}
