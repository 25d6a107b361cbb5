package report

import (
	"fmt"
	"strings"
)

// SuggestName proposes the closest valid name for an unknown attribute or
// role type. It returns "" when nothing is close enough.
func SuggestName(unknown string, valid []string) string {
	if len(valid) == 0 {
		return ""
	}

	best, bestDist := "", -1
	for _, name := range valid {
		d := levenshteinDistance(strings.ToLower(unknown), strings.ToLower(name))
		if bestDist < 0 || d < bestDist {
			best, bestDist = name, d
		}
	}

	// Two edits, or one per three characters for long names.
	limit := max(2, len(best)/3)
	if bestDist > limit {
		return ""
	}
	return fmt.Sprintf("Did you mean '%s'?", best)
}

// SuggestMissing proposes how to add a required attribute.
func SuggestMissing(name, example string) string {
	if example != "" {
		return fmt.Sprintf("Add '%s: %s'", name, example)
	}
	return fmt.Sprintf("Add the '%s' attribute", name)
}

// levenshteinDistance computes the edit distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}
