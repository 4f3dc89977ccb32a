package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/api-sage/fd-account-processor/src/internal/logger"
)

func logRequest(r *http.Request, payload any) {
	logger.Info("http request", logger.Fields{
		"method":  r.Method,
		"path":    maskPath(r.URL.Path),
		"query":   r.URL.RawQuery,
		"payload": logger.SanitizePayload(payload),
	})
}

func logResponse(r *http.Request, status int, payload any, start time.Time) {
	logger.Info("http response", logger.Fields{
		"method":     r.Method,
		"path":       maskPath(r.URL.Path),
		"status":     status,
		"durationMs": time.Since(start).Milliseconds(),
		"response":   logger.SanitizePayload(payload),
	})
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := logger.Fields{
		"method": r.Method,
		"path":   maskPath(r.URL.Path),
		"query":  r.URL.RawQuery,
	}
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("http handler error", err, fields)
}

// maskPath hides deposit identifiers that travel in URL path segments
// (account numbers, IBANs) so request logs carry only their tail.
func maskPath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if looksLikeAccountIdentifier(segment) {
			segments[i] = logger.MaskAccountNumber(segment)
		}
	}
	return strings.Join(segments, "/")
}

// looksLikeAccountIdentifier matches generated account numbers (all
// digits plus a check digit) and IBANs (uppercase country and bank
// codes around the digits). Route words and UUIDs fall through.
func looksLikeAccountIdentifier(segment string) bool {
	if len(segment) < 9 {
		return false
	}
	digits := 0
	for _, r := range segment {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return digits >= 8
}
