// Package wordfreq splits text into words and counts them.
package wordfreq

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Entry is one word and how often it occurred.
type Entry struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// Split breaks s on runs of whitespace.
func Split(s string) []string {
	return strings.Fields(s)
}

// Count tallies words. With fold set, words differing only in case are
// counted together under their folded form.
func Count(words []string, fold bool) map[string]int {
	var folder cases.Caser
	if fold {
		folder = cases.Fold()
	}

	counts := make(map[string]int, len(words))
	for _, w := range words {
		if fold {
			w = folder.String(w)
		}
		counts[w]++
	}
	return counts
}

// Top orders counts by descending count, ties broken alphabetically. n <= 0
// returns every entry.
func Top(counts map[string]int, n int) []Entry {
	out := make([]Entry, 0, len(counts))
	for w, c := range counts {
		out = append(out, Entry{Word: w, Count: c})
	}
	slices.SortFunc(out, func(a, b Entry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Word, b.Word)
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
