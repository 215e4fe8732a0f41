package vfs

import "strings"

// Normalize resolves raw against current and returns a canonical absolute
// virtual path: "/"-rooted, no empty segments, no "." or ".." segments.
//
// Rules:
//   - raw starting with "/" is absolute; anything else is relative to current
//   - ".." pops one segment; popping past the root is a no-op, never an error
//   - "." and empty segments are dropped
//   - the empty result renders as "/"
//
// Normalization is idempotent and never fails; the worst malformed input
// collapses to the root.
func Normalize(raw, current string) string {
	full := raw
	if !strings.HasPrefix(raw, "/") {
		full = current + "/" + raw
	}

	stack := make([]string, 0, 8)
	for _, seg := range strings.Split(full, "/") {
		switch seg {
		case "", ".":
			// skip
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, seg)
		}
	}

	if len(stack) == 0 {
		return "/"
	}
	return "/" + strings.Join(stack, "/")
}

// Segments splits a normalized path into its segments. The root path has
// no segments.
func Segments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
