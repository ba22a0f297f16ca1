// Package gin wraps the gin-gonic framework, so the config package
// may create an engine with the middlewares which are shared by all
// resources.
package gin

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/car-management/pkg/core/log"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

// RequestIDHeader is the header which carries the request identifier
// in both directions.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen limits the accepted client provided identifiers.
const maxRequestIDLen = 128

func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

func Logger() HandlerFunc {
	return gin.Logger()
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}

// RequestID returns a middleware which takes the request identifier
// from the X-Request-ID header (or generates a random UUID if it was
// missing or too long) and stores it in the request context, so all
// records which are logged by the use cases for this request carry
// it. The identifier is echoed in the response header too.
func RequestID() HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		ctx := log.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
