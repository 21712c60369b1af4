package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/auth"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/errors"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/util"
)

// AuthMiddleware 校验身份令牌并把主体信息写入请求上下文。
// 令牌来自 token Cookie 或 Authorization 头（Bearer）。
func AuthMiddleware(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		util.Logger.Debug("进入认证中间件",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		token := extractToken(c)
		if token == "" {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "需要认证"))
			c.Abort()
			return
		}

		identity, err := verifier.Verify(ctx, token)
		if err != nil {
			errors.HandleError(c, errors.Wrap(errors.ErrUnauthorized, "无效或过期的令牌", err))
			c.Abort()
			return
		}

		c.Set("uid", identity.UID)
		c.Set("email", identity.Email)

		select {
		case <-ctx.Done():
			errors.HandleError(c, errors.New(errors.ErrTimeout, "请求超时"))
			c.Abort()
			return
		default:
			c.Next()
		}
	}
}

// extractToken 依次尝试 Cookie 和 Authorization 头
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
