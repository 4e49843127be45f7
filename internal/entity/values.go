package entity

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Params holds source-specific request parameters. Values are strings or numbers.
type Params map[string]any

// Item is one normalized provider result. Its content is opaque to the core and is
// stored verbatim.
type Item map[string]any

// Clone returns a shallow copy so callers cannot mutate the original.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// String returns the trimmed string value of key, formatting numbers if needed.
func (p Params) String(key string) string {
	return lookupString(p, key)
}

// Int returns the integer value of key or fallback when absent or unparsable.
func (p Params) Int(key string, fallback int) int {
	return lookupInt(p, key, fallback)
}

func (i Item) String(key string) string {
	return lookupString(i, key)
}

func (i Item) Int(key string, fallback int) int {
	return lookupInt(i, key, fallback)
}

func (i Item) Float(key string) float64 {
	return lookupFloat(i, key)
}

// Time parses RFC3339 or YYYY-MM-DD values. Zero time when absent.
func (i Item) Time(key string) time.Time {
	switch v := i[key].(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

func lookupString(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func lookupInt(m map[string]any, key string, fallback int) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

func lookupFloat(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	}
	return 0
}
