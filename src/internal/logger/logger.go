package logger

import (
	"encoding/json"
	"log"
	"strings"
)

type Fields map[string]any

var sensitiveKeys = map[string]struct{}{
	"apikey":       {},
	"api_key":      {},
	"apikeyhash":   {},
	"api_key_hash": {},
}

// maskedKeys hold values that are logged partially: enough to trace an
// account, not enough to reproduce the full identifier.
var maskedKeys = map[string]struct{}{
	"accountnumber":   {},
	"account_number":  {},
	"iban":            {},
	"transferaccount": {},
}

func Info(message string, fields Fields) {
	log.Printf("INFO %s %s", message, fieldsJSON(fields))
}

func Warn(message string, fields Fields) {
	log.Printf("WARN %s %s", message, fieldsJSON(fields))
}

func Error(message string, err error, fields Fields) {
	base := Fields{}
	for k, v := range fields {
		base[k] = v
	}
	if err != nil {
		base["error"] = err.Error()
	}

	log.Printf("ERROR %s %s", message, fieldsJSON(base))
}

func SanitizePayload(payload any) any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "<unavailable>"
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "<unavailable>"
	}

	return sanitizeValue("", data)
}

// MaskAccountNumber keeps the last four characters visible.
func MaskAccountNumber(number string) string {
	trimmed := strings.TrimSpace(number)
	if len(trimmed) <= 4 {
		return trimmed
	}
	return strings.Repeat("*", len(trimmed)-4) + trimmed[len(trimmed)-4:]
}

func fieldsJSON(fields Fields) string {
	if fields == nil {
		fields = Fields{}
	}

	sanitized := SanitizePayload(fields)
	b, err := json.Marshal(sanitized)
	if err != nil {
		return `{}`
	}

	return string(b)
}

func sanitizeValue(key string, value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for innerKey, inner := range typed {
			if isSensitiveKey(innerKey) {
				out[innerKey] = "******"
				continue
			}
			out[innerKey] = sanitizeValue(innerKey, inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, sanitizeValue("", item))
		}
		return out
	case string:
		if isMaskedKey(key) {
			return MaskAccountNumber(typed)
		}
		return typed
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	_, ok := sensitiveKeys[normalizeKey(key)]
	return ok
}

func isMaskedKey(key string) bool {
	_, ok := maskedKeys[normalizeKey(key)]
	return ok
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", ""))
}
