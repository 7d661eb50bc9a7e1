package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/danmuck/ednsctl/internal/inspect"
	"github.com/danmuck/ednsctl/internal/observability"
	"github.com/danmuck/ednsctl/internal/output"
	"github.com/danmuck/ednsctl/internal/protocol/edns"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Inspector serves the EDNS codecs over HTTP.
type Inspector struct {
	ID              string    `json:"id"`
	Version         string    `json:"version"`
	Addr            string    `json:"addr"`
	MaxMessageBytes int       `json:"max_message_bytes"`
	Appeared        time.Time `json:"appeared"`

	router *gin.Engine
}

type decodeRequest struct {
	Hex string `json:"hex" binding:"required"`
}

type encodeRequest struct {
	Code      string `json:"code" binding:"required"`
	ExtraText string `json:"extra_text"`
}

func New(id, version, addr string, corsOrigins []string, maxMessageBytes int) *Inspector {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(id))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	return &Inspector{
		ID:              id,
		Version:         version,
		Addr:            addr,
		MaxMessageBytes: maxMessageBytes,
		Appeared:        time.Now(),
		router:          r,
	}
}

func (s *Inspector) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Inspector) RegisterRoutes() {
	r := s.router
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.ID,
			"version": s.Version,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/codes", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"codes": output.ViewCodes()})
	})

	r.GET("/codes/:id", func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 16)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an unsigned 16-bit integer"})
			return
		}
		code, ok := edns.LookupErrorCode(uint16(id))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown extended error code", "id": id})
			return
		}
		c.JSON(http.StatusOK, output.CodeView{ID: code.ID(), Name: code.Name(), Label: code.Label()})
	})

	r.POST("/decode", func(c *gin.Context) {
		var req decodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		views, err := inspect.Decode(req.Hex, s.MaxMessageBytes)
		if err != nil {
			observability.SetCodecOutcome(c, observability.OutcomeFailed, 0)
			_ = c.Error(err)
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		observability.SetCodecOutcome(c, observability.OutcomeDecoded, len(views))
		c.JSON(http.StatusOK, gin.H{"options": views})
	})

	r.POST("/encode", func(c *gin.Context) {
		var req encodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		res, err := inspect.EncodeExtendedError(req.Code, req.ExtraText)
		if err != nil {
			observability.SetCodecOutcome(c, observability.OutcomeFailed, 0)
			_ = c.Error(err)
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		observability.SetCodecOutcome(c, observability.OutcomeEncoded, 1)
		c.JSON(http.StatusOK, res)
	})
}

func (s *Inspector) Serve() error {
	s.RegisterRoutes()
	log.Info().Str("id", s.ID).Str("version", s.Version).Str("addr", s.Addr).Msg("inspector listening")
	return s.router.Run(s.Addr)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, inspect.ErrMessageTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, inspect.ErrInvalidHex),
		errors.Is(err, edns.ErrUnknownCode),
		errors.Is(err, edns.ErrEncoding):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
