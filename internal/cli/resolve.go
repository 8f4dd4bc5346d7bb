package cli

import (
	"fmt"
	"strings"
)

// resolveID matches input against ids: exact match first, then a unique
// prefix. Short ids printed in tables are UUID prefixes.
func resolveID[T any](kind, input string, items []T, idOf func(T) string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	var matches []string
	for _, item := range items {
		id := idOf(item)
		if id == input {
			return id, nil
		}
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}
