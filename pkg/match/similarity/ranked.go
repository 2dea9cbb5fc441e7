package similarity

import (
	"math"
)

// RankedIndex scores phrases with BM25 over their terms. It serves longer
// labels, where term overlap ranks better than whole-string edit distance.
type RankedIndex struct {
	phrases   []rankedPhrase
	docFreq   map[string]int
	avgDocLen float64

	k1 float64
	b  float64
}

type rankedPhrase struct {
	Phrase
	terms map[string]int
	len   int
}

// NewRankedIndex indexes the given phrases with standard BM25 parameters
// (k1=1.2, b=0.75).
func NewRankedIndex(phrases []Phrase) *RankedIndex {
	ix := &RankedIndex{
		docFreq: make(map[string]int),
		k1:      1.2,
		b:       0.75,
	}

	totalLen := 0
	for _, p := range phrases {
		toks := tokens(p.Text)
		if len(toks) == 0 {
			continue
		}
		rp := rankedPhrase{Phrase: p, terms: make(map[string]int, len(toks)), len: len(toks)}
		for _, t := range toks {
			rp.terms[t]++
		}
		for t := range rp.terms {
			ix.docFreq[t]++
		}
		totalLen += len(toks)
		ix.phrases = append(ix.phrases, rp)
	}
	if len(ix.phrases) > 0 {
		ix.avgDocLen = float64(totalLen) / float64(len(ix.phrases))
	}
	return ix
}

// Query ranks phrases against the text's terms and converts BM25 scores into
// [0,1] similarities by dividing by the query's own self-score upper bound.
func (ix *RankedIndex) Query(text string, limit int) []Candidate {
	queryTerms := tokens(text)
	if len(queryTerms) == 0 || limit <= 0 || len(ix.phrases) == 0 {
		return nil
	}

	var cands []Candidate
	for _, p := range ix.phrases {
		score := ix.score(queryTerms, p)
		if score <= 0 {
			continue
		}
		ceiling := ix.selfScore(p)
		sim := score / ceiling
		if sim > 1 {
			sim = 1
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

func (ix *RankedIndex) score(queryTerms []string, p rankedPhrase) float64 {
	var score float64
	seen := make(map[string]bool, len(queryTerms))
	for _, term := range queryTerms {
		if seen[term] {
			continue
		}
		seen[term] = true
		tf := p.terms[term]
		if tf == 0 {
			continue
		}
		score += ix.idf(term) * ix.termWeight(tf, p.len)
	}
	return score
}

// selfScore is the score the phrase gets against its own terms: the maximum
// any query can reach, used to normalize into [0,1].
func (ix *RankedIndex) selfScore(p rankedPhrase) float64 {
	var score float64
	for term, tf := range p.terms {
		score += ix.idf(term) * ix.termWeight(tf, p.len)
	}
	if score == 0 {
		return 1
	}
	return score
}

func (ix *RankedIndex) termWeight(tf, docLen int) float64 {
	f := float64(tf)
	norm := 1 - ix.b + ix.b*float64(docLen)/ix.avgDocLen
	return f * (ix.k1 + 1) / (f + ix.k1*norm)
}

func (ix *RankedIndex) idf(term string) float64 {
	df := ix.docFreq[term]
	n := len(ix.phrases)
	// BM25+ style floor keeps common terms from going negative.
	return math.Log(1 + (float64(n)-float64(df)+0.5)/(float64(df)+0.5))
}
