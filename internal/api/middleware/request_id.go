package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// requestIDMaxLen 限制外部传入的 Request-ID 最大长度，防止日志注入
const requestIDMaxLen = 64

// RequestID 请求追踪 ID 中间件
// 复用请求头 X-Request-ID（前端重试时沿用同一 ID），缺失或超长时生成 UUID；
// 写回响应头，供前端与日志关联同一次请求
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}

// RequestIDFrom 取出当前请求的追踪 ID，未经过 RequestID 中间件时为空串
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
