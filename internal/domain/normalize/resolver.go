// Package normalize converts raw snapshot rows into clean numeric records.
//
// Snapshot sources disagree on field naming, so every logical field is
// resolved through an ordered list of candidate keys with a typed default.
// Resolution lives here in one pass; downstream packages only ever see the
// stable model schema.
package normalize

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/okian/rinkcast/pkg/metrics"
)

// Row is a loosely-typed snapshot record as decoded from JSON.
type Row = map[string]any

// toFloat coerces a raw JSON value to a float64. It accepts numeric types,
// json.Number, and strings (a leading '+' as in "+12" is tolerated).
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(n), "+"))
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// number resolves the first present candidate key to a float64, degrading
// to def on absence or coercion failure. Malformed present values are
// counted; they never fail the record.
func number(row Row, def float64, keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := row[k]
		if !ok || v == nil {
			continue
		}
		if f, ok := toFloat(v); ok {
			return f, true
		}
		metrics.RecordFieldDefaulted()
		return def, false
	}
	return def, false
}

// integer is number truncated to int.
func integer(row Row, def int, keys ...string) (int, bool) {
	f, ok := number(row, float64(def), keys...)
	return int(f), ok
}

// text resolves the first present non-empty string candidate.
func text(row Row, def string, keys ...string) string {
	for _, k := range keys {
		if s, ok := row[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return def
}

// list resolves the first present non-empty slice candidate.
func list(row Row, keys ...string) []any {
	for _, k := range keys {
		if l, ok := row[k].([]any); ok && len(l) > 0 {
			return l
		}
	}
	return nil
}

// ParseTimeOnIce normalizes a time-on-ice value to fractional minutes.
// It accepts the textual "MM:SS" form or a raw numeric-minutes form and
// defaults to 0 on unparseable input.
func ParseTimeOnIce(v any) float64 {
	if v == nil {
		return 0
	}
	if f, ok := toFloat(v); ok {
		return f
	}
	s, ok := v.(string)
	if !ok {
		return 0
	}
	s = strings.TrimSpace(s)
	if mm, ss, found := strings.Cut(s, ":"); found {
		m, err1 := strconv.ParseFloat(mm, 64)
		sec, err2 := strconv.ParseFloat(ss, 64)
		if err1 != nil || err2 != nil {
			return 0
		}
		return m + sec/60.0
	}
	return 0
}

// goaltender detects goaltender positions across the source variants:
// a position string, or an object carrying code/abbrev/name.
func goaltender(v any) bool {
	switch pos := v.(type) {
	case string:
		p := strings.ToUpper(pos)
		return strings.Contains(p, "G") || strings.Contains(p, "GOAL")
	case map[string]any:
		code := text(pos, "", "code", "abbrev", "name")
		c := strings.ToUpper(code)
		return strings.Contains(c, "G") || strings.Contains(c, "GOAL")
	default:
		return false
	}
}
