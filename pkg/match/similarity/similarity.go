// Package similarity abstracts approximate text matching behind a single
// Index interface with two implementations: an edit-distance fuzzy index for
// short labels and a ranked term-frequency index for longer ones. The matcher
// picks by label length; either can be swapped without touching the decision
// policy.
package similarity

import (
	"sort"
	"strings"
)

// Phrase is one indexed keyword phrase. Text must already be in normalized
// matching form.
type Phrase struct {
	Key  string
	Text string
}

// Candidate is a ranked match with similarity in [0,1].
type Candidate struct {
	Key        string
	Phrase     string
	Similarity float64
}

// Index answers top-k similarity queries over the indexed phrases. Query text
// must be normalized with the same normalizer used for the phrases.
type Index interface {
	Query(text string, limit int) []Candidate
}

// sortCandidates orders by similarity descending, then key for determinism.
func sortCandidates(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Similarity != cands[j].Similarity {
			return cands[i].Similarity > cands[j].Similarity
		}
		return cands[i].Key < cands[j].Key
	})
}

// dedupeByKey keeps only the best candidate per key, preserving order.
func dedupeByKey(cands []Candidate) []Candidate {
	seen := make(map[string]bool, len(cands))
	out := cands[:0]
	for _, c := range cands {
		if seen[c.Key] {
			continue
		}
		seen[c.Key] = true
		out = append(out, c)
	}
	return out
}

func tokens(text string) []string {
	return strings.Fields(text)
}

// MeaningfulLength counts the non-space characters of a normalized label,
// which is what the length-based index selection keys off.
func MeaningfulLength(text string) int {
	n := 0
	for _, r := range text {
		if r != ' ' {
			n++
		}
	}
	return n
}
