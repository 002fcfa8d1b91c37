package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

const genericErrorMessage = "An unexpected error occurred. Please try again."

// statusMessages is the fallback table used when a failed response carries
// no usable detail field.
var statusMessages = map[int]string{
	400: "Bad request. Please check your input and try again.",
	401: "Authentication required. Please log in.",
	403: "You do not have permission to perform this action.",
	404: "The requested resource was not found.",
	409: "This request conflicts with existing data.",
	422: "Validation failed. Please check your input.",
	429: "Too many requests. Please try again later.",
	500: "Server error. Please try again later.",
	502: "Service temporarily unavailable. Please try again.",
	503: "Service unavailable. Please try again later.",
	504: "Request timeout. Please try again.",
}

// constraintPattern extracts the conflicting field from a Postgres unique
// constraint name of the shape <table>_<field>_key.
var constraintPattern = regexp.MustCompile(`constraint "(\w+)_(\w+)_key"`)

// MessageForStatus maps an HTTP status code to its user-facing message.
func MessageForStatus(status int) string {
	if message, ok := statusMessages[status]; ok {
		return message
	}

	return genericErrorMessage
}

type detailEntry struct {
	Type    string `json:"type"`
	Msg     string `json:"msg"`
	Message string `json:"message"`
}

func (e detailEntry) text() string {
	if e.Msg != "" {
		return e.Msg
	}

	return e.Message
}

// NormalizeError turns a failed upstream response into a single
// user-facing message. Precedence: a detail field in the JSON body
// (integrity errors translated, validation messages joined, strings
// verbatim, anything else structurally), then the static status table.
// Raw database error text never reaches the caller.
func NormalizeError(status int, body []byte) string {
	var parsed struct {
		Detail json.RawMessage `json:"detail"`
	}

	if err := json.Unmarshal(body, &parsed); err != nil {
		return MessageForStatus(status)
	}
	if len(parsed.Detail) == 0 || bytes.Equal(parsed.Detail, []byte("null")) {
		return MessageForStatus(status)
	}

	var detailString string
	if err := json.Unmarshal(parsed.Detail, &detailString); err == nil {
		return detailString
	}

	var items []json.RawMessage
	if err := json.Unmarshal(parsed.Detail, &items); err == nil {
		if message := messageFromDetailArray(items); message != "" {
			return message
		}
	}

	return structuralDetail(parsed.Detail)
}

func messageFromDetailArray(items []json.RawMessage) string {
	entries := make([]detailEntry, 0, len(items))
	for _, item := range items {
		var entry detailEntry
		if err := json.Unmarshal(item, &entry); err == nil {
			entries = append(entries, entry)
		}
	}

	for _, entry := range entries {
		if entry.Type == "IntegrityError" {
			return integrityMessage(entry.text())
		}
	}

	joined := ""
	for _, entry := range entries {
		text := entry.text()
		if text == "" {
			continue
		}
		if joined != "" {
			joined += ". "
		}
		joined += text
	}

	return joined
}

func integrityMessage(msg string) string {
	if strings.Contains(msg, "duplicate key value") {
		if match := constraintPattern.FindStringSubmatch(msg); match != nil {
			field := match[2]
			return fmt.Sprintf("A %s with this value already exists. Please use a different %s.", field, field)
		}
		return "This item already exists. Please use a different value."
	}

	if strings.Contains(msg, "foreign key constraint") {
		return "This operation cannot be completed because it would break data relationships."
	}

	return "This operation conflicts with existing data. Please check your input."
}

// structuralDetail renders a non-string, non-translatable detail value as
// compact JSON text.
func structuralDetail(detail json.RawMessage) string {
	compact := &bytes.Buffer{}
	if err := json.Compact(compact, detail); err != nil {
		return string(detail)
	}

	return compact.String()
}
