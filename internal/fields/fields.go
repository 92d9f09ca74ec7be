// Package fields reads loosely-typed values out of decoded JSON objects.
//
// Every accessor is total: wrong types degrade to zero values instead of
// errors, because a partially-defaulted payload is always preferred over a
// rejected one.
package fields

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Lookup returns the value of the first key present in raw with a non-nil
// value. Keys are tried in order, so callers list the current field name
// before its legacy aliases.
func Lookup(raw map[string]any, keys ...string) (any, bool) {
	if raw == nil {
		return nil, false
	}
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// String coerces scalars into a string. Numbers use the shortest decimal form.
func String(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// StringList coerces arrays, comma-separated strings and single scalars into
// a list of trimmed, non-empty strings.
func StringList(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case nil:
		return out
	case []string:
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range t {
			if s := strings.TrimSpace(String(item)); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, part := range strings.Split(t, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	default:
		if s := strings.TrimSpace(String(t)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Bool accepts booleans, "true"/"false"-style strings and numbers.
func Bool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "sim", "1":
			return true
		}
		return false
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return false
	}
}

// Int accepts numbers and numeric strings, rounding fractional values.
// Anything else is 0.
func Int(v any) int {
	switch t := v.(type) {
	case float64:
		return int(math.Round(t))
	case int:
		return t
	case int64:
		return int(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return int(math.Round(f))
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int(math.Round(f))
		}
	}
	return 0
}
