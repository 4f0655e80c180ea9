package api

import (
	"net/http"
	"strings"

	"adminbase/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const currentClaimsContextKey = "current-claims"

// AuthMiddleware JWT 认证中间件：解析 Bearer Token 并把声明放入请求上下文。
// 未认证路径（登录、health、ping）不经过本中间件。
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, failBody("未提供认证令牌"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, failBody("无效的授权头格式"))
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, failBody("未提供认证令牌"))
			return
		}

		claims, err := h.authManager.ParseToken(tokenString)
		if err != nil {
			logrus.WithError(err).Warn("failed to parse jwt token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, failBody("无效的认证令牌"))
			return
		}

		c.Set(currentClaimsContextKey, claims)
		c.Next()
	}
}

// CurrentClaims 从上下文获取当前认证声明。
func CurrentClaims(c *gin.Context) *auth.Claims {
	value, exists := c.Get(currentClaimsContextKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
