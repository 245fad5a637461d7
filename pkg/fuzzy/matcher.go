// Package fuzzy ranks candidate strings against a possibly misspelled word.
// It is the matching utility behind most correction rules.
package fuzzy

import (
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/hbollon/go-edlib"
)

const (
	// DefaultN is the number of close matches returned when callers have no
	// reason to ask for more.
	DefaultN = 3
	// DefaultCutoff is the minimum normalized similarity a candidate must
	// reach to count as a match.
	DefaultCutoff = 0.6
)

// Match pairs a candidate with its similarity to the queried word.
type Match struct {
	Word     string
	Score    float64 // Jaro-Winkler similarity, [0,1], 1.0 = identical
	Distance int     // Levenshtein distance, for rules that cap edit distance
}

// Similarity returns the normalized Jaro-Winkler similarity of a and b.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	return float64(edlib.JaroWinklerSimilarity(a, b))
}

// Rank scores every possibility against word and returns the matches at or
// above cutoff, sorted by descending score. The sort is stable, so candidates
// with equal scores keep their original relative order.
func Rank(word string, possibilities []string, cutoff float64) []Match {
	matches := make([]Match, 0, len(possibilities))
	for _, p := range possibilities {
		score := Similarity(word, p)
		if score < cutoff {
			continue
		}
		matches = append(matches, Match{
			Word:     p,
			Score:    score,
			Distance: levenshtein.ComputeDistance(word, p),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// GetCloseMatches returns at most n possibilities scoring at least cutoff
// against word, best first. n <= 0 means DefaultN.
func GetCloseMatches(word string, possibilities []string, n int, cutoff float64) []string {
	if n <= 0 {
		n = DefaultN
	}
	matches := Rank(word, possibilities, cutoff)
	if len(matches) > n {
		matches = matches[:n]
	}
	words := make([]string, len(matches))
	for i, m := range matches {
		words[i] = m.Word
	}
	return words
}

// GetClosest returns the single best match for word. When nothing clears the
// cutoff and fallbackToFirst is set, the first possibility is returned
// unconditionally; otherwise ok is false.
func GetClosest(word string, possibilities []string, cutoff float64, fallbackToFirst bool) (best string, ok bool) {
	matches := Rank(word, possibilities, cutoff)
	if len(matches) > 0 {
		return matches[0].Word, true
	}
	if fallbackToFirst && len(possibilities) > 0 {
		return possibilities[0], true
	}
	return "", false
}
