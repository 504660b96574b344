package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Record is an opaque JSON object returned by the Fess REST API.
type Record map[string]any

// Hits returns the objects in the record's "data" array. The returned maps
// are shared with the record, so changes to them are visible in it.
func (r Record) Hits() []map[string]any {
	raw, ok := r["data"].([]any)
	if !ok {
		return nil
	}
	hits := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if hit, ok := item.(map[string]any); ok {
			hits = append(hits, hit)
		}
	}
	return hits
}

// Count returns the number of records Fess reported, falling back to the
// length of the data array.
func (r Record) Count() int {
	for _, key := range []string{"record_count", "hit_count"} {
		if n, ok := toInt(r[key]); ok {
			return n
		}
	}
	return len(r.Hits())
}

// String returns a field as a string; missing fields yield "".
func (r Record) String(key string) string {
	return FieldText(r[key])
}

// FieldText normalises a field value to text. Lists are joined with blank
// lines, skipping empty items; scalars are trimmed.
func FieldText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			s := fmt.Sprint(item)
			if s == "" {
				continue
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, "\n\n")
	case []string:
		parts := make([]string, 0, len(v))
		for _, s := range v {
			if s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n\n")
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}
