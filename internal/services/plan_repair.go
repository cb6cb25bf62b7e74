package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"fitplan/pkg/utils"
)

// ExtractPlanJSON recovers a JSON object from free-form model output. The
// input may carry markdown code fences, log-style prefixes, surrounding
// prose, or a truncated tail. Extraction is permissive about the noise
// around the object but strict about the object itself: the result either
// parses as JSON or the call fails with ErrExtraction/ErrDecode; a
// partial or corrupt structure is never silently accepted.
func ExtractPlanJSON(raw string) (map[string]any, error) {
	cleaned := stripNoise(raw)

	start := strings.Index(cleaned, "{")
	if start == -1 {
		return nil, fmt.Errorf("%w", utils.ErrExtraction)
	}
	cleaned = cleaned[start:]

	// Best-effort closure of truncated output: append the deficit of
	// closing braces before the first parse attempt.
	if deficit := braceDeficit(cleaned); deficit > 0 {
		cleaned += strings.Repeat("}", deficit)
	}

	if doc, ok := tryDecode(cleaned); ok {
		return doc, nil
	}

	// The padded text did not parse; scan for complete top-level objects
	// and take the last one.
	if candidate, ok := lastCompleteObject(cleaned); ok {
		if doc, ok := tryDecode(candidate); ok {
			return doc, nil
		}
		cleaned = candidate
	}

	// Stray non-ASCII bytes can break decoding; strip them and retry once.
	ascii := stripNonASCII(cleaned)
	if ascii != cleaned {
		if doc, ok := tryDecode(ascii); ok {
			return doc, nil
		}
	}

	return nil, fmt.Errorf("%w", utils.ErrDecode)
}

// stripNoise removes fenced code-block markers and leading log-style lines
// that precede any JSON content.
func stripNoise(raw string) string {
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```JSON", "")
	raw = strings.ReplaceAll(raw, "```", "")

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		if strings.ContainsAny(line, "{[") {
			return strings.TrimSpace(strings.Join(lines[i:], "\n"))
		}
	}
	return strings.TrimSpace(raw)
}

// braceDeficit counts unmatched opening braces, ignoring braces inside
// string literals.
func braceDeficit(s string) int {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch c {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
	}
	return depth
}

// lastCompleteObject scans for every point where bracket depth returns to
// zero, i.e. every complete top-level object, and returns the last one.
func lastCompleteObject(s string) (string, bool) {
	var objStart, lastStart, lastEnd int
	lastEnd = -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch c {
		case '{':
			if depth == 0 {
				objStart = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					lastStart = objStart
					lastEnd = i
				}
			}
		}
	}

	if lastEnd == -1 {
		return "", false
	}
	return s[lastStart : lastEnd+1], true
}

func stripNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func tryDecode(s string) (map[string]any, bool) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return nil, false
	}
	return doc, true
}
