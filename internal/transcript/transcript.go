// Package transcript loads execution transcripts into the ordered line
// sequence the scoring engine analyzes.
package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotFound is returned when the transcript file does not exist.
var ErrNotFound = errors.New("transcript not found")

// payloadKeys are the structured-record fields that carry the message text,
// checked in order.
var payloadKeys = []string{"content", "text", "message", "output", "data"}

// Load reads the transcript at path and returns its trimmed, non-empty lines.
// Lines that look like JSON objects are reduced to their first string payload
// field; anything that fails to decode is kept verbatim.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	return Parse(string(data)), nil
}

// Parse splits raw transcript text into analyzable lines.
func Parse(raw string) []string {
	var lines []string
	for _, rawLine := range strings.Split(raw, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "{") {
			if payload, ok := extractPayload(line); ok {
				line = payload
			}
		}
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// extractPayload returns the first string-valued payload field of a JSON
// object line. ok is false when the line is not an object or has no such field.
func extractPayload(line string) (string, bool) {
	var record map[string]json.RawMessage
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		return "", false
	}
	for _, key := range payloadKeys {
		raw, present := record[key]
		if !present {
			continue
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		// null and non-string values fall through to the next key.
		s, isString := v.(string)
		if !isString {
			continue
		}
		return strings.TrimSpace(s), true
	}
	return "", false
}
