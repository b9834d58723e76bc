package research

import (
	"encoding/json"
	"strings"
)

// decodeJSON unmarshals model output into T after stripping code fences.
// Failure is reported, never fatal: every caller falls back to a safe
// default value instead of propagating the error.
func decodeJSON[T any](raw string) (*T, bool) {
	clean := sanitizeJSON(raw)
	var out T
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return nil, false
	}
	return &out, true
}

// sanitizeJSON strips markdown fences models often wrap JSON in
func sanitizeJSON(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = trimmed[3:]
		trimmed = strings.TrimPrefix(trimmed, "json")
		trimmed = strings.TrimPrefix(trimmed, "JSON")
		if idx := strings.Index(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
	}
	return strings.TrimSpace(trimmed)
}
