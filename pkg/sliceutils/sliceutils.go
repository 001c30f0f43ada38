package sliceutils

import (
	"slices"
	"strings"
)

func StringSliceContains(slice []string, contains string, caseInsensitive bool) bool {
	return slices.ContainsFunc(slice, func(s string) bool {
		if caseInsensitive {
			return strings.EqualFold(s, contains)
		}

		return s == contains
	})
}

// SplitTags splits the comma separated tag list reported by the Web API.
func SplitTags(tags string) []string {
	if strings.TrimSpace(tags) == "" {
		return []string{}
	}

	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
