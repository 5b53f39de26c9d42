package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// captureLogs routes the global logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = orig })
	return &buf
}

func redactRouter(opts RedactOptions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RedactingLogger(opts))
	r.DELETE("/comment/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRedactingLogger_MasksPasswordQueryParam(t *testing.T) {
	buf := captureLogs(t)
	r := redactRouter(RedactOptions{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/comment/1?senha=bola123", nil)
	r.ServeHTTP(w, req)

	out := buf.String()
	if strings.Contains(out, "bola123") {
		t.Fatalf("password leaked into logs: %s", out)
	}
	if !strings.Contains(out, "REDACTED") {
		t.Fatalf("expected redaction marker in logs: %s", out)
	}
}

func TestRedactingLogger_MasksSensitiveHeaders(t *testing.T) {
	buf := captureLogs(t)
	r := redactRouter(RedactOptions{MaskHeaders: []string{"X-Api-Key"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/comment/1", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	req.Header.Set("X-Api-Key", "key-value-42")
	r.ServeHTTP(w, req)

	out := buf.String()
	if strings.Contains(out, "secret-token") || strings.Contains(out, "key-value-42") {
		t.Fatalf("sensitive header leaked: %s", out)
	}
}

func TestRedactingLogger_ScrubsEmailsFromHeaders(t *testing.T) {
	buf := captureLogs(t)
	r := redactRouter(RedactOptions{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/comment/1", nil)
	req.Header.Set("X-Contact", "alguem@example.com")
	r.ServeHTTP(w, req)

	if strings.Contains(buf.String(), "alguem@example.com") {
		t.Fatalf("email leaked: %s", buf.String())
	}
}

func TestRedactingLogger_LogsRoutePathAndStatus(t *testing.T) {
	buf := captureLogs(t)
	r := redactRouter(RedactOptions{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/comment/777", nil))

	out := buf.String()
	if !strings.Contains(out, "/comment/:id") {
		t.Fatalf("expected registered route in log: %s", out)
	}
	if !strings.Contains(out, `"status":200`) {
		t.Fatalf("expected status field: %s", out)
	}
}
