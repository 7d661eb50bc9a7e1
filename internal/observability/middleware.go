package observability

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	contextOutcome = "ednsctl.outcome"
	contextOptions = "ednsctl.options"
)

// SetCodecOutcome marks the request as a codec call that ended in outcome
// after handling n options. Both middlewares below pick it up.
func SetCodecOutcome(c *gin.Context, outcome string, n int) {
	c.Set(contextOutcome, outcome)
	c.Set(contextOptions, n)
}

// CodecOutcome reports the outcome set by SetCodecOutcome, if any.
func CodecOutcome(c *gin.Context) (string, int, bool) {
	outcome := c.GetString(contextOutcome)
	if outcome == "" {
		return "", 0, false
	}
	return outcome, c.GetInt(contextOptions), true
}

func routePath(c *gin.Context) string {
	if path := c.FullPath(); path != "" {
		return path
	}
	return c.Request.URL.Path
}

func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		if status >= 500 {
			event = logger.Error()
		} else if status >= 400 {
			event = logger.Warn()
		}

		event = event.
			Str("method", c.Request.Method).
			Str("path", routePath(c)).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Int("bytes", c.Writer.Size())
		if outcome, n, ok := CodecOutcome(c); ok {
			event = event.Str("outcome", outcome).Int("options", n)
		}
		if len(c.Errors) > 0 {
			event = event.Str("err", c.Errors.Last().Error())
		}
		event.Msg("http_request")
	}
}

func RequestMetricsMiddleware(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := routePath(c)
		RecordHTTPRequest(service, c.Request.Method, path, c.Writer.Status(), time.Since(start))
		if outcome, _, ok := CodecOutcome(c); ok {
			RecordCodecRequest(service, path, outcome)
		}
	}
}
