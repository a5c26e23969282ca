package repository

import "strings"

// Image IDs and feature tags are stored as comma separated text
// columns.  Identifiers are opaque hex strings and feature tags are
// validated not to contain commas on input, so a plain join/split is
// sufficient.

func joinList(items []string) string {
	return strings.Join(items, ",")
}

func splitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
