// Package httpapi wires the HTTP transport (Gin) to the meter service,
// middleware, and route handlers. It centralizes cross-cutting concerns:
// tracing, correlation IDs, logging with password redaction, panic
// recovery, metrics, compression, CORS, and security headers.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate the correlation id
//  3. RedactingLogger: structured logs with the deletion password scrubbed
//  4. Recovery: capture panics after the logger
//  5. Body size limiter (attachments ride inside JSON bodies)
//  6. Gzip: the document endpoint serves base64 attachments
//  7. Metrics and the /metrics endpoint
//  8. Rate limiter (per client IP; off when RATE_RPS is 0)
//  9. CORS and security headers
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/miyukometro/go-backend/internal/config"
	"github.com/miyukometro/go-backend/internal/http/handlers"
	"github.com/miyukometro/go-backend/internal/http/middleware"
	"github.com/miyukometro/go-backend/internal/services"
)

// RegisterRoutes attaches all middleware and endpoints to the given Gin
// engine. svc is injected rather than constructed here so tests can swap in
// doubles; see NewMeterService for the production wiring.
func RegisterRoutes(r *gin.Engine, svc handlers.MeterService, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging; the deletion password must never reach logs
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to the JSON error envelope
	r.Use(middleware.Recovery())

	// 5) Global body size limit; comment attachments arrive inline
	r.Use(limitBody(cfg.MaxBodyBytes))

	// 6) Compress responses; the document grows with base64 attachments
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per client IP (disabled at RPS 0)
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	// 9) CORS posture: the page is served from anywhere, so default to *
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and the request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks keep the error envelope uniform
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.MsgRouteNotFound)
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.MsgMethodNotAllowed)
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	h := handlers.New(svc)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath) // e.g. "/api"
	{
		api.GET("/data", h.GetData)
		api.POST("/comment", h.AddComment)
		api.DELETE("/comment/:id", h.DeleteComment)
		api.POST("/alert", h.SetAlert)
	}
}

// NewMeterService builds the production MeterService from configuration.
func NewMeterService(st services.DocumentStore, cfg config.Config) *services.MeterService {
	return &services.MeterService{
		Store:              st,
		MaxAttachmentBytes: cfg.MaxAttachmentBytes,
	}
}

// limitBody caps the request body for all endpoints using
// http.MaxBytesReader; oversized bodies error on read downstream.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
