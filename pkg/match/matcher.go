// Package match implements the tiered decision policy that assigns semantic
// keys to form field descriptors. Tiers are evaluated in strictly increasing
// distrust order and the first acceptable result wins; nothing backtracks.
package match

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/pkg/field"
	"github.com/goliatone/go-formfill/pkg/match/similarity"
	"github.com/goliatone/go-formfill/pkg/semantics"
	"github.com/goliatone/go-formfill/pkg/textnorm"
)

// Confidence floors per tier. A tier's result is accepted only when its
// confidence clears the floor; otherwise evaluation falls through to the next
// tier.
const (
	confAutocomplete = 1.0
	confTypeOnly     = 0.95
	floorTypeOnly    = 0.9
	floorPattern     = 0.8
	confLiteral      = 0.9
	floorFuzzy       = 0.6
	confKeyword      = 0.55
	floorKeyword     = 0.5

	// Labels need this many meaningful characters before the ranked index
	// joins the fuzzy index at Tier 2.
	rankedIndexMinLength = 10

	// Tier 3 refuses labels shorter than this outright.
	keywordTierMinLength = 3

	similarityQueryLimit = 5
)

// Matcher resolves descriptors to semantic keys. Construct with New; the
// zero value is not usable.
type Matcher struct {
	registry *semantics.Registry
	norm     *textnorm.Normalizer
	fuzzy    similarity.Index
	ranked   similarity.Index
	literals []literalRule
	logger   *zap.Logger
}

// Option customises a Matcher.
type Option func(*Matcher)

// WithLogger injects a logger; defaults to a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithFuzzyIndex replaces the edit-distance index.
func WithFuzzyIndex(ix similarity.Index) Option {
	return func(m *Matcher) {
		if ix != nil {
			m.fuzzy = ix
		}
	}
}

// WithRankedIndex replaces the ranked term index.
func WithRankedIndex(ix similarity.Index) Option {
	return func(m *Matcher) {
		if ix != nil {
			m.ranked = ix
		}
	}
}

// WithLiteralLabels prepends extra literal label rules ahead of the built-in
// table. Each pair maps a normalized label to a key.
func WithLiteralLabels(rules map[string]string) Option {
	return func(m *Matcher) {
		var extra []literalRule
		for label, key := range rules {
			extra = append(extra, literalRule{label: label, key: key})
		}
		m.literals = append(extra, m.literals...)
	}
}

// New builds a Matcher over the registry. The similarity indexes default to
// the registry's own keyword corpus.
func New(registry *semantics.Registry, options ...Option) *Matcher {
	m := &Matcher{
		registry: registry,
		norm:     registry.Normalizer(),
		literals: append([]literalRule(nil), defaultLiterals...),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}
	if m.fuzzy == nil || m.ranked == nil {
		phrases := keywordPhrases(registry)
		if m.fuzzy == nil {
			m.fuzzy = similarity.NewFuzzyIndex(phrases)
		}
		if m.ranked == nil {
			m.ranked = similarity.NewRankedIndex(phrases)
		}
	}
	return m
}

func keywordPhrases(registry *semantics.Registry) []similarity.Phrase {
	var phrases []similarity.Phrase
	for _, e := range registry.Entries() {
		for _, kw := range e.NormalizedKeywords() {
			phrases = append(phrases, similarity.Phrase{Key: e.Key, Text: kw})
		}
	}
	return phrases
}

// Match runs the decision policy for one descriptor. A nil result means no
// tier produced an acceptable key; the caller decides how to route the field.
func (m *Matcher) Match(d field.Descriptor) *field.MatchResult {
	if d.Type == field.ControlFile || d.Type == field.ControlHidden || d.Type == field.ControlPassword {
		return nil
	}

	fullText := strings.TrimSpace(d.Label.Text + " " + d.Description)
	if isQuestion(fullText) {
		m.logger.Debug("field short-circuited as question",
			zap.String("field", d.ID), zap.String("label", d.Label.Text))
		return nil
	}

	normLabel := m.norm.Normalize(d.Label.Text)

	if r := m.matchDeterministic(d, normLabel); r != nil {
		return m.accepted(d, r)
	}
	if r := m.matchPattern(d, normLabel); r != nil {
		return m.accepted(d, r)
	}
	if r := m.matchLiteral(d, normLabel); r != nil {
		return m.accepted(d, r)
	}
	if r := m.matchSimilarity(d, normLabel); r != nil {
		return m.accepted(d, r)
	}
	if r := m.matchKeyword(d, normLabel); r != nil {
		return m.accepted(d, r)
	}
	return nil
}

func (m *Matcher) accepted(d field.Descriptor, r *field.MatchResult) *field.MatchResult {
	m.logger.Debug("field matched",
		zap.String("field", d.ID),
		zap.String("key", r.Key),
		zap.String("tier", r.Tier.String()),
		zap.Float64("confidence", r.Confidence))
	return r
}

// matchDeterministic is Tier 0: exact autocomplete token match at confidence
// 1.0, else a unique accepted-type match at 0.95 (accepted because the floor
// is 0.9; the threshold is preserved from the original tuning).
func (m *Matcher) matchDeterministic(d field.Descriptor, normLabel string) *field.MatchResult {
	if d.Autocomplete != "" {
		for _, e := range m.registry.Entries() {
			if !containsString(e.Positive.Autocomplete, d.Autocomplete) {
				continue
			}
			if m.negativeHit(e, d, normLabel) {
				continue
			}
			return &field.MatchResult{Key: e.Key, Tier: field.TierDeterministic, Confidence: confAutocomplete}
		}
	}

	if !isDistinctiveType(d.Type) {
		return nil
	}
	var candidate *semantics.Entry
	for _, e := range m.registry.Entries() {
		if !containsType(e.Positive.Types, d.Type) {
			continue
		}
		if m.negativeHit(e, d, normLabel) {
			continue
		}
		if candidate != nil {
			// Not unique; the type alone cannot decide.
			return nil
		}
		candidate = e
	}
	if candidate == nil || confTypeOnly < floorTypeOnly {
		return nil
	}
	return &field.MatchResult{Key: candidate.Key, Tier: field.TierDeterministic, Confidence: confTypeOnly}
}

// isDistinctiveType reports whether a control type carries semantic meaning
// on its own. Generic types (text, select, textarea) say nothing about what
// the field is for.
func isDistinctiveType(t field.ControlType) bool {
	switch t {
	case field.ControlEmail, field.ControlTel, field.ControlDate, field.ControlURL:
		return true
	default:
		return false
	}
}

// matchPattern is Tier 1: id/name regex hits, composite-scored against the
// label (or, for unlabeled fields, the normalized identifier itself).
func (m *Matcher) matchPattern(d field.Descriptor, normLabel string) *field.MatchResult {
	textBasis := normLabel
	if textBasis == "" {
		textBasis = m.norm.Normalize(firstNonEmpty(d.Name, d.ID))
	}

	var best *field.MatchResult
	for _, e := range m.registry.Entries() {
		if !matchesIdentifier(e, d) {
			continue
		}
		if m.negativeHit(e, d, normLabel) {
			continue
		}
		score := compositeScore(d, e, m.keywordSimilarity(e, textBasis))
		if score < floorPattern {
			continue
		}
		if best == nil || score > best.Confidence {
			best = &field.MatchResult{Key: e.Key, Tier: field.TierPattern, Confidence: score}
		}
	}
	return best
}

// matchLiteral is Tier 1.5: the curated exact-label table at fixed
// confidence. First rule wins; the table's internal order is load-bearing.
func (m *Matcher) matchLiteral(d field.Descriptor, normLabel string) *field.MatchResult {
	if normLabel == "" {
		return nil
	}
	for _, rule := range m.literals {
		if rule.label != normLabel {
			continue
		}
		e, ok := m.registry.Get(rule.key)
		if !ok {
			continue
		}
		if m.negativeHit(e, d, normLabel) {
			continue
		}
		return &field.MatchResult{Key: rule.key, Tier: field.TierLiteral, Confidence: confLiteral}
	}
	return nil
}

// matchSimilarity is Tier 2: fuzzy index always, ranked term index for longer
// labels, candidates composite-scored and accepted at the fuzzy floor.
func (m *Matcher) matchSimilarity(d field.Descriptor, normLabel string) *field.MatchResult {
	if normLabel == "" {
		return nil
	}

	candidates := m.fuzzy.Query(normLabel, similarityQueryLimit)
	if similarity.MeaningfulLength(normLabel) >= rankedIndexMinLength {
		candidates = append(candidates, m.ranked.Query(normLabel, similarityQueryLimit)...)
	}

	var best *field.MatchResult
	for _, c := range candidates {
		e, ok := m.registry.Get(c.Key)
		if !ok {
			continue
		}
		if m.negativeHit(e, d, normLabel) {
			continue
		}
		score := compositeScore(d, e, c.Similarity)
		if score < floorFuzzy {
			continue
		}
		if best == nil || score > best.Confidence {
			best = &field.MatchResult{Key: c.Key, Tier: field.TierFuzzy, Confidence: score}
		}
	}
	return best
}

// matchKeyword is Tier 3: loose containment on word boundaries at fixed low
// confidence. Last resort before giving up.
func (m *Matcher) matchKeyword(d field.Descriptor, normLabel string) *field.MatchResult {
	if len(normLabel) < keywordTierMinLength {
		return nil
	}
	if confKeyword < floorKeyword {
		return nil
	}

	var bestEntry *semantics.Entry
	var bestLen int
	for _, e := range m.registry.Entries() {
		if m.negativeHit(e, d, normLabel) {
			continue
		}
		for _, kw := range e.NormalizedKeywords() {
			if kw == "" || !keywordContained(normLabel, kw) {
				continue
			}
			if bestEntry == nil || len(kw) > bestLen {
				bestEntry = e
				bestLen = len(kw)
			}
		}
	}
	if bestEntry == nil {
		return nil
	}
	return &field.MatchResult{Key: bestEntry.Key, Tier: field.TierKeyword, Confidence: confKeyword}
}

// keywordContained accepts equality, prefix, or suffix on a word boundary.
func keywordContained(label, kw string) bool {
	if label == kw {
		return true
	}
	if strings.HasPrefix(label, kw+" ") {
		return true
	}
	if strings.HasSuffix(label, " "+kw) {
		return true
	}
	return false
}

// negativeHit reports whether any of the entry's negative signals disqualify
// the descriptor.
func (m *Matcher) negativeHit(e *semantics.Entry, d field.Descriptor, normLabel string) bool {
	for _, kw := range e.NormalizedNegativeKeywords() {
		if kw != "" && normLabel != "" && strings.Contains(normLabel, kw) {
			return true
		}
	}
	for _, p := range e.Negative.Patterns {
		if p == nil {
			continue
		}
		if (d.ID != "" && p.MatchString(d.ID)) || (d.Name != "" && p.MatchString(d.Name)) {
			return true
		}
	}
	if d.Autocomplete != "" && containsString(e.Negative.Autocomplete, d.Autocomplete) {
		return true
	}
	if containsType(e.Negative.Types, d.Type) {
		return true
	}
	if e.Negative.MaxBelow != nil && d.Max != nil && *d.Max < *e.Negative.MaxBelow {
		return true
	}
	return false
}

// keywordSimilarity returns the entry's best fuzzy similarity against the
// text basis, used to feed the composite scorer at Tier 1.
func (m *Matcher) keywordSimilarity(e *semantics.Entry, textBasis string) float64 {
	if textBasis == "" {
		return 0
	}
	var best float64
	for _, c := range m.fuzzy.Query(textBasis, similarityQueryLimit) {
		if c.Key == e.Key && c.Similarity > best {
			best = c.Similarity
		}
	}
	return best
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
