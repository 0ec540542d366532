// Package search ranks candidate strings against a short query by how
// tightly the query's characters appear, in order, within each candidate.
//
// It backs repository lookup ("gt open gtool" finding github.com/sierra/git-tool)
// and shell completion filtering, so the ordering must be deterministic.
package search

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Matches reports whether query's characters appear in candidate in order,
// ignoring case. An empty query matches everything.
func Matches(candidate, query string) bool {
	q := []rune(strings.ToLower(query))
	if len(q) == 0 {
		return true
	}

	i := 0
	for _, r := range strings.ToLower(candidate) {
		if r == q[i] {
			i++
			if i == len(q) {
				return true
			}
		}
	}
	return false
}

// Score rates how well query matches candidate. For every start position the
// tightest window containing query as a subsequence is found; the narrowest
// window across positions determines the score, len(query) / window width.
// A contiguous match scores 1. The second result is false when there is no match.
func Score(candidate, query string) (float64, bool) {
	c := []rune(strings.ToLower(candidate))
	q := []rune(strings.ToLower(query))
	if len(q) == 0 || len(c) == 0 || len(q) > len(c) {
		return 0, false
	}

	shortest := -1
	for offset := 0; offset < len(c); offset++ {
		start, end, ok := matchFrom(c, q, offset)
		if !ok {
			// nothing matches from here, so nothing matches further right either
			break
		}
		if width := end - start + 1; shortest < 0 || width < shortest {
			shortest = width
		}
		offset = start
	}

	if shortest < 0 {
		return 0, false
	}
	return float64(len(q)) / float64(shortest), true
}

// matchFrom greedily matches q against c starting at offset and returns the
// indices of the first and last matched characters.
func matchFrom(c, q []rune, offset int) (start, end int, ok bool) {
	start = -1
	qi := 0
	for i := offset; i < len(c); i++ {
		if c[i] != q[qi] {
			continue
		}
		if start < 0 {
			start = i
		}
		qi++
		if qi == len(q) {
			return start, i, true
		}
	}
	return 0, 0, false
}

// BestMatches returns the candidates that match query, best first.
// An empty query returns all candidates in their original order.
func BestMatches(query string, candidates []string) []string {
	return BestMatchesBy(query, candidates, func(s string) string { return s })
}

// BestMatchesBy ranks items by the score of key(item) against query.
// Ties are broken by shorter key, then by original position.
func BestMatchesBy[T any](query string, items []T, key func(T) string) []T {
	if query == "" {
		return slices.Clone(items)
	}

	type ranked struct {
		item   T
		score  float64
		length int
	}

	var matched []ranked
	for _, item := range items {
		k := key(item)
		if score, ok := Score(k, query); ok {
			matched = append(matched, ranked{item: item, score: score, length: utf8.RuneCountInString(k)})
		}
	}

	slices.SortStableFunc(matched, func(a, b ranked) int {
		if a.score != b.score {
			return cmp.Compare(b.score, a.score)
		}
		return cmp.Compare(a.length, b.length)
	})

	results := make([]T, len(matched))
	for i, m := range matched {
		results[i] = m.item
	}
	return results
}
