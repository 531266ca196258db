// Package httpapi exposes the pipeline over HTTP for the web UI. Routes and
// response shapes mirror the ones the front end already speaks:
// /api/parse, /api/ai-process, /api/translate, /api/illustration.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/soal8877-ctrl/referent/internal/extract"
	"github.com/soal8877-ctrl/referent/internal/prompt"
	"github.com/soal8877-ctrl/referent/internal/referr"
)

// Pipeline is the application surface the handlers need. *app.App satisfies
// it; tests substitute fakes.
type Pipeline interface {
	Extract(ctx context.Context, url string) (extract.Article, error)
	Transform(ctx context.Context, content string, action prompt.Action, sourceURL string) (string, error)
	Translate(ctx context.Context, content string) (string, error)
}

// NewRouter builds the gin engine with all routes attached. allowedOrigins
// feeds the CORS policy for the browser UI; empty means same-origin only.
func NewRouter(p Pipeline, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	if len(allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: allowedOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type"},
		}))
	}

	h := &handlers{pipeline: p}
	r.POST("/api/parse", h.parse)
	r.POST("/api/ai-process", h.aiProcess)
	r.POST("/api/translate", h.translate)
	r.POST("/api/illustration", h.illustration)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("request")
	}
}

// statusFor maps boundary error codes to HTTP statuses.
func statusFor(code string) int {
	switch code {
	case referr.EValidation:
		return http.StatusBadRequest
	case referr.ENotFound:
		return http.StatusNotFound
	case referr.ENoContent:
		return http.StatusUnprocessableEntity
	case referr.ETimeout:
		return http.StatusGatewayTimeout
	case referr.ENetwork, referr.EServerError, referr.ELoadError, referr.EUpstream, referr.ENoResult:
		return http.StatusBadGateway
	case referr.EConfig:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	code := referr.ErrorCode(err)
	c.JSON(statusFor(code), gin.H{
		"code":  code,
		"error": referr.ErrorMessage(err),
	})
}
