package similarity

import (
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FuzzyIndex matches by bounded edit distance. It is location-agnostic: a
// phrase is compared against the whole query and against every contiguous
// token window of the query with the phrase's token count, so "first name"
// still matches inside "enter first name below".
type FuzzyIndex struct {
	phrases []Phrase

	// maxDistance bounds the accepted Levenshtein distance. Scaled caps keep
	// short phrases strict: the effective cap is the smaller of maxDistance
	// and len(phrase)/3.
	maxDistance int
}

// FuzzyOption customises a FuzzyIndex.
type FuzzyOption func(*FuzzyIndex)

// WithMaxDistance overrides the default edit-distance cap.
func WithMaxDistance(d int) FuzzyOption {
	return func(ix *FuzzyIndex) {
		if d > 0 {
			ix.maxDistance = d
		}
	}
}

// NewFuzzyIndex indexes the given phrases.
func NewFuzzyIndex(phrases []Phrase, options ...FuzzyOption) *FuzzyIndex {
	ix := &FuzzyIndex{maxDistance: 3}
	for _, p := range phrases {
		if p.Text == "" {
			continue
		}
		ix.phrases = append(ix.phrases, p)
	}
	for _, opt := range options {
		if opt != nil {
			opt(ix)
		}
	}
	return ix
}

// Query returns up to limit candidates whose edit distance to the text (or to
// one of its token windows) clears the cap. Similarity is 1 - distance/len.
func (ix *FuzzyIndex) Query(text string, limit int) []Candidate {
	if text == "" || limit <= 0 {
		return nil
	}
	queryTokens := tokens(text)

	var cands []Candidate
	for _, p := range ix.phrases {
		best := ix.bestDistance(text, queryTokens, p.Text)
		if best < 0 {
			continue
		}
		denom := len(p.Text)
		if l := len(text); l > denom {
			denom = l
		}
		sim := 1.0 - float64(best)/float64(denom)
		if sim <= 0 {
			continue
		}
		cands = append(cands, Candidate{Key: p.Key, Phrase: p.Text, Similarity: sim})
	}

	sortCandidates(cands)
	cands = dedupeByKey(cands)
	if len(cands) > limit {
		cands = cands[:limit]
	}
	return cands
}

// bestDistance returns the smallest accepted distance, or -1 when nothing
// clears the cap.
func (ix *FuzzyIndex) bestDistance(text string, queryTokens []string, phrase string) int {
	maxDist := ix.maxDistance
	if scaled := len(phrase) / 3; scaled < maxDist {
		maxDist = scaled
	}

	best := -1
	consider := func(candidate string) {
		d := fuzzy.LevenshteinDistance(candidate, phrase)
		if d <= maxDist && (best < 0 || d < best) {
			best = d
		}
	}

	consider(text)

	phraseTokens := tokens(phrase)
	window := len(phraseTokens)
	if window > 0 && window < len(queryTokens) {
		for i := 0; i+window <= len(queryTokens); i++ {
			consider(joinTokens(queryTokens[i : i+window]))
		}
	}
	return best
}

func joinTokens(toks []string) string {
	switch len(toks) {
	case 0:
		return ""
	case 1:
		return toks[0]
	}
	n := len(toks) - 1
	for _, t := range toks {
		n += len(t)
	}
	b := make([]byte, 0, n)
	for i, t := range toks {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, t...)
	}
	return string(b)
}
