package docgen

import "strings"

// StripFence removes a wrapping Markdown code fence (with optional language
// tag) from s, returning the trimmed inner content. Unfenced input is
// returned trimmed; the operation is idempotent.
func StripFence(s string) string {
	s = strings.TrimSpace(s)

	if !strings.HasPrefix(s, "```") {
		return s
	}

	lines := strings.Split(s, "\n")
	if len(lines) < 2 || !strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		return s
	}

	inner := lines[1 : len(lines)-1]
	return strings.TrimSpace(strings.Join(inner, "\n"))
}
