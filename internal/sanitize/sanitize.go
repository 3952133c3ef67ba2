// Package sanitize neutralizes hostile content in decoded request data
// before anything else touches it. It operates on the tree produced by
// decoding JSON into any (string, float64, bool, nil, []any,
// map[string]any) and always returns a new tree, leaving the input
// untouched.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	scriptBlockRe  = regexp.MustCompile(`(?is)<script.*?>.*?</script>`)
	htmlTagRe      = regexp.MustCompile(`(?i)</?[a-z][^>]*>`)
	jsURIRe        = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerRe = regexp.MustCompile(`(?i)on\w+=".*?"`)
)

// CleanString strips script-tag blocks, HTML-like tags, javascript: URIs
// and inline event-handler attributes from s.
func CleanString(s string) string {
	s = scriptBlockRe.ReplaceAllString(s, "")
	s = htmlTagRe.ReplaceAllString(s, "")
	s = jsURIRe.ReplaceAllString(s, "")
	s = eventHandlerRe.ReplaceAllString(s, "")
	return s
}

// CleanKey rewrites object keys that are meaningful to a document store's
// query language: a leading operator prefix ($) or a path separator (.)
// must never be attacker-controlled.
func CleanKey(key string) string {
	if !strings.HasPrefix(key, "$") && !strings.Contains(key, ".") {
		return key
	}
	key = strings.ReplaceAll(key, "$", "_")
	return strings.ReplaceAll(key, ".", "_")
}

// CleanValue returns a sanitized copy of a decoded JSON tree. Non-string
// leaves pass through unchanged; arrays and objects are rebuilt so the
// original value is never aliased or mutated.
func CleanValue(v any) any {
	switch val := v.(type) {
	case string:
		return CleanString(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[CleanKey(k)] = CleanValue(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = CleanValue(child)
		}
		return out
	default:
		return v
	}
}
