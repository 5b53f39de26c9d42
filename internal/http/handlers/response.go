// Response utilities shared by all endpoints.
//
// Every failure is serialized as the one envelope the frontend consumes:
//
//	HTTP/1.1 401 Unauthorized
//	{ "erro": "Senha incorreta" }
//
// fail() centralizes formatting and makes sure 5xx responses are logged with
// request context before the envelope is written.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miyukometro/go-backend/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Erro is the human-readable message shown by the frontend.
	Erro string `json:"erro"`
}

// fail aborts the request with the standard error envelope. Server errors
// (>= 500) are logged through the request-scoped logger so they carry the
// correlation id.
func fail(c *gin.Context, status int, msg string) {
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Erro: msg})
}

// Fail is the exported variant of fail(), used by router fallbacks
// (NoRoute/NoMethod) to answer with the same envelope.
func Fail(c *gin.Context, status int, msg string) { fail(c, status, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
