// Package suggest finds close matches for mistyped names using Levenshtein
// distance.
package suggest

import (
	"sort"
	"strings"
)

// maxSuggestions caps how many matches are returned
const maxSuggestions = 3

// levenshtein calculates the edit distance between two strings
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// Names returns up to three candidates close to unknown, best first.
// Matching ignores case. A candidate containing unknown as a substring
// always matches.
func Names(unknown string, candidates []string) []string {
	needle := strings.ToLower(strings.TrimSpace(unknown))
	if needle == "" {
		return nil
	}

	type scored struct {
		name  string
		score int
	}
	var matches []scored
	for _, c := range candidates {
		hay := strings.ToLower(c)
		dist := levenshtein([]rune(needle), []rune(hay))
		switch {
		case strings.Contains(hay, needle):
			matches = append(matches, scored{c, 0})
		case dist <= max(3, len([]rune(needle))/2):
			matches = append(matches, scored{c, dist})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score < matches[j].score })

	var out []string
	for i := 0; i < len(matches) && i < maxSuggestions; i++ {
		out = append(out, matches[i].name)
	}
	return out
}

// Hint formats suggestions as a "did you mean" clause, or "" for none
func Hint(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	quoted := make([]string, len(suggestions))
	for i, s := range suggestions {
		quoted[i] = "\"" + s + "\""
	}
	return "did you mean " + strings.Join(quoted, " or ") + "?"
}
