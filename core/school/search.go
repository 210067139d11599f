package school

import (
	"sort"
	"strings"
)

const maxSearchResults = 50

// Search returns candidates matching `query` by case-insensitive substring
// containment, capped at 50. Entries whose name starts with the query come
// before those that merely contain it; within each tier, alphabetical order.
// Category headers are excluded, and an empty query returns no candidates.
func Search(query string, candidates []string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	matched := make([]string, 0)
	if query == "" {
		return matched
	}

	for _, c := range candidates {
		if IsCategoryHeader(c) {
			continue
		}
		if strings.Contains(strings.ToLower(c), query) {
			matched = append(matched, c)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		iStarts := strings.HasPrefix(strings.ToLower(matched[i]), query)
		jStarts := strings.HasPrefix(strings.ToLower(matched[j]), query)
		if iStarts != jStarts {
			return iStarts
		}
		return matched[i] < matched[j]
	})

	if len(matched) > maxSearchResults {
		matched = matched[:maxSearchResults]
	}
	return matched
}
