// Package jsonrepair recovers structured data from the loosely formatted
// JSON that LLM providers tend to emit: markdown fences, commentary around
// the payload, trailing commas, comments, and truncated output.
package jsonrepair

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrUnrecoverable is returned when no repair step yields parseable JSON.
var ErrUnrecoverable = errors.New("jsonrepair: no repair produced valid JSON")

// Parse attempts to unmarshal raw into target, applying repair steps one at
// a time until one of the intermediate forms parses. Steps are cumulative:
// each builds on the previous step's output.
func Parse(raw string, target any) error {
	candidate := strings.TrimSpace(raw)
	steps := []func(string) string{
		func(s string) string { return s },
		StripFences,
		ExtractObject,
		CleanSyntax,
		BalanceBrackets,
	}

	for _, step := range steps {
		candidate = step(candidate)
		if candidate == "" {
			continue
		}
		if err := json.Unmarshal([]byte(candidate), target); err == nil {
			return nil
		}
	}
	return ErrUnrecoverable
}

// StripFences removes a leading markdown code fence (``` or ```json) and a
// trailing ``` if present.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 && isFenceLabel(s[:idx]) {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func isFenceLabel(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// ExtractObject slices out the span from the first '{' to the last '}'. If
// no such span exists the input is returned unchanged so later steps still
// get a chance.
func ExtractObject(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}

// CleanSyntax removes // line comments, /* */ block comments, and commas
// that directly precede a closing brace or bracket. String literals are
// left untouched.
func CleanSyntax(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]

		if inString {
			out.WriteByte(ch)
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}

		switch {
		case ch == '"':
			inString = true
			out.WriteByte(ch)
		case ch == '/' && i+1 < len(s) && s[i+1] == '/':
			for i < len(s) && s[i] != '\n' {
				i++
			}
			if i < len(s) {
				out.WriteByte('\n')
			}
		case ch == '/' && i+1 < len(s) && s[i+1] == '*':
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}
			i++ // skip the trailing '/'
		case ch == ',':
			if next := nextNonSpace(s, i+1); next == '}' || next == ']' {
				continue
			}
			out.WriteByte(ch)
		default:
			out.WriteByte(ch)
		}
	}
	return out.String()
}

func nextNonSpace(s string, from int) byte {
	for i := from; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return s[i]
		}
	}
	return 0
}

// BalanceBrackets appends the closing braces and brackets a truncated
// payload is missing, in reverse nesting order. Brackets inside string
// literals are ignored.
func BalanceBrackets(s string) string {
	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, ch)
		case '}':
			if len(stack) > 0 && stack[len(stack)-1] == '{' {
				stack = stack[:len(stack)-1]
			}
		case ']':
			if len(stack) > 0 && stack[len(stack)-1] == '[' {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(stack) == 0 {
		return s
	}

	var out strings.Builder
	out.WriteString(s)
	// A payload cut mid string needs its quote closed first.
	if inString {
		out.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			out.WriteByte('}')
		} else {
			out.WriteByte(']')
		}
	}
	return out.String()
}
