package buildpayload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/exilekitchen/buildcraft/pkg/models"
)

// ErrNoObject is returned by Parse when the provider text contains no JSON
// object at all.
var ErrNoObject = errors.New("no JSON object in provider response")

// Parse decodes provider text into a normalized record. Markdown code fences
// and prose before or after the object are tolerated.
func Parse(data []byte) (*models.BuildRecord, error) {
	body, err := extractObject(data)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode build payload: %w", err)
	}
	return Normalize(raw), nil
}

func extractObject(data []byte) ([]byte, error) {
	body := bytes.TrimSpace(data)
	if bytes.HasPrefix(body, []byte("```")) {
		body = body[3:]
		// Drop the info string (```json).
		if nl := bytes.IndexByte(body, '\n'); nl >= 0 {
			body = body[nl+1:]
		}
		if end := bytes.LastIndex(body, []byte("```")); end >= 0 {
			body = body[:end]
		}
		body = bytes.TrimSpace(body)
	}
	if len(body) > 0 && body[0] == '{' && json.Valid(body) {
		return body, nil
	}
	start := bytes.IndexByte(body, '{')
	end := bytes.LastIndexByte(body, '}')
	if start < 0 || end <= start {
		return nil, ErrNoObject
	}
	return body[start : end+1], nil
}
