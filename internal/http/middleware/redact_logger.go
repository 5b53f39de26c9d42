// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RedactingLogger, the access logger used in
// production. The service's only secret is the shared deletion password;
// it travels in request bodies (never logged) but can also leak through
// query strings and custom headers, so both are scrubbed before emitting.
//
// Usage:
//
//	r := gin.New()
//	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
//	    MaskHeaders: []string{"X-Api-Key"},
//	}))
package middleware

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RedactOptions configures additional scrub behavior for RedactingLogger.
//
// MaskHeaders lists extra header names whose values are replaced with
// "[REDACTED]". Matching is case-insensitive and merged with the built-in
// sensitive headers (Authorization, Cookie, Set-Cookie).
//
// MaskQueryParams lists query parameter names to blank out; "senha" is
// always included.
type RedactOptions struct {
	MaskHeaders     []string
	MaskQueryParams []string
}

// RedactingLogger returns a Gin middleware that logs requests with secrets
// scrubbed. It replaces Logger() in the chain; both attach the same kind of
// access log, but this one masks password-bearing query parameters, masks
// sensitive headers, and strips email-shaped strings from header values.
// Bodies are never logged.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	emailRE := regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)

	maskHeaders := map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			maskHeaders[h] = struct{}{}
		}
	}

	maskParams := map[string]struct{}{"senha": {}}
	for _, p := range opts.MaskQueryParams {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			maskParams[p] = struct{}{}
		}
	}

	safeQuery := func(raw string) string {
		if raw == "" {
			return raw
		}
		vals, err := url.ParseQuery(raw)
		if err != nil {
			// Unparseable query: drop it rather than risk logging a secret.
			return "[unparseable]"
		}
		for k := range vals {
			if _, ok := maskParams[strings.ToLower(k)]; ok {
				vals[k] = []string{"[REDACTED]"}
			}
		}
		return vals.Encode()
	}

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		query := safeQuery(c.Request.URL.RawQuery)

		safeHeaders := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := maskHeaders[strings.ToLower(k)]; ok {
				safeHeaders[k] = "[REDACTED]"
				continue
			}
			safeHeaders[k] = emailRE.ReplaceAllString(strings.Join(vv, ", "), "[REDACTED:email]")
		}

		c.Next()

		status := c.Writer.Status()

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}

		reqID := c.Writer.Header().Get(requestIDHeader)
		ev.
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", safeHeaders).
			Msg("http_request")
	}
}
