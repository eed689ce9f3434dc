package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"vidsocial/infrastructure/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID keeps an incoming X-Request-ID or generates one, and stores it in
// the request context for logger.FromContext.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		ctx.Request = ctx.Request.WithContext(logger.WithRequestID(ctx.Request.Context(), id))
		ctx.Header(RequestIDHeader, id)
		ctx.Next()
	}
}
