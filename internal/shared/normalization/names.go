package normalization

import "strings"

// ComponentName canonicalizes catalog component names: lower case, trimmed, with
// underscores and spaces folded to dashes.
func ComponentName(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	switch trimmed {
	case "", "-":
		return ""
	}
	replacer := strings.NewReplacer("_", "-", " ", "-")
	return replacer.Replace(trimmed)
}

// SplitList splits a comma separated list, trimming entries and dropping blanks.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
