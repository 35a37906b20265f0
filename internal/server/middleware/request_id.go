package middleware

import (
	"github.com/gin-gonic/gin"

	"mango/internal/pkg/id"
)

// RequestID 请求ID中间件
// 优先沿用调用方通过 X-Request-ID 传入的ID，便于跨服务链路追踪
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = id.New()
		}

		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()
	}
}
