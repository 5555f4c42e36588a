package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Round1 rounds to one decimal place. All rubric and aggregate scores are
// reported at this precision.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Clamp bounds a sub-score to the 0..100 band.
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ContainsAny reports whether any keyword appears in the (already lowered) text.
func ContainsAny(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// CountDistinct counts how many distinct keywords appear in the lowered text.
func CountDistinct(lowered string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			count++
		}
	}
	return count
}

var fenceRe = regexp.MustCompile("(?s)```[a-zA-Z0-9]*\n?(.*?)```")

// StripFences removes markdown code fences from LLM output, returning the
// inner content when the whole payload is fenced.
func StripFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if m := fenceRe.FindStringSubmatch(trimmed); m != nil && strings.HasPrefix(trimmed, "```") {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}

var numberRe = regexp.MustCompile(`[0-9]+(\.[0-9]+)?`)

// FirstNumber extracts the first numeric token from a text, for parsing
// bare-number LLM judgments. Returns false when none is present.
func FirstNumber(s string) (float64, bool) {
	m := numberRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Dedupe keeps first occurrences, preserving order, capped at limit
// (limit <= 0 means no cap).
func Dedupe(items []string, limit int) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, it := range items {
		key := Normalize(it)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
