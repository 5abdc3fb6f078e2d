package handler

import (
	"context"
	"crypto/subtle"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/authz"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/handler/response"
	"github.com/gin-gonic/gin"
)

// ServiceKeyHeader carries the shared key of machine callers.
const ServiceKeyHeader = "X-Service-Key"

// CallerResolver turns a credential into a context carrying the caller.
type CallerResolver interface {
	Resolve(ctx context.Context, credential string) (context.Context, authz.Caller, error)
}

// AuthMiddleware resolves the caller from the Authorization header once per
// request and stores it in the request context.
func AuthMiddleware(resolver CallerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			return
		}

		ctx, _, err := resolver.Resolve(c.Request.Context(), header)
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ServiceKeyMiddleware admits only callers presenting the shared service key.
func ServiceKeyMiddleware(key string) gin.HandlerFunc {
	expected := []byte(key)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader(ServiceKeyHeader))
		if len(expected) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
			response.Unauthorized(c, "invalid service key")
			return
		}
		c.Next()
	}
}
