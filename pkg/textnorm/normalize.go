// Package textnorm canonicalizes label text ahead of semantic matching. The
// matching form is deliberately lossy; ForDisplay keeps a lossless variant for
// anything shown back to a person.
package textnorm

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer applies the canonical matching transformation. The zero value is
// not usable; construct with New so the built-in tables are installed.
type Normalizer struct {
	synonyms  map[string]string
	rules     []synonymRule
	stopWords map[string]bool
}

// synonymRule is a tokenized replacement: from is matched as a whole-token
// phrase, longest phrase first.
type synonymRule struct {
	from []string
	to   []string
}

// Option customises a Normalizer.
type Option func(*Normalizer)

// WithSynonyms merges extra abbreviation replacements into the built-in
// table. Keys are matched against whole normalized tokens.
func WithSynonyms(extra map[string]string) Option {
	return func(n *Normalizer) {
		for k, v := range extra {
			n.synonyms[strings.ToLower(strings.TrimSpace(k))] = strings.ToLower(strings.TrimSpace(v))
		}
	}
}

// WithStopWords merges extra stop words into the built-in set.
func WithStopWords(extra ...string) Option {
	return func(n *Normalizer) {
		for _, w := range extra {
			n.stopWords[strings.ToLower(strings.TrimSpace(w))] = true
		}
	}
}

// New returns a Normalizer carrying the built-in synonym and stop-word tables
// plus any overrides.
func New(options ...Option) *Normalizer {
	n := &Normalizer{
		synonyms:  make(map[string]string, len(defaultSynonyms)),
		stopWords: make(map[string]bool, len(defaultStopWords)),
	}
	for k, v := range defaultSynonyms {
		n.synonyms[k] = v
	}
	for _, w := range defaultStopWords {
		n.stopWords[w] = true
	}
	for _, opt := range options {
		if opt != nil {
			opt(n)
		}
	}
	n.compileRules()
	return n
}

// compileRules tokenizes the synonym table and orders it longest phrase
// first, so "zip code" wins over "zip" during the greedy scan.
func (n *Normalizer) compileRules() {
	n.rules = n.rules[:0]
	for k, v := range n.synonyms {
		from := strings.Fields(k)
		if len(from) == 0 {
			continue
		}
		n.rules = append(n.rules, synonymRule{from: from, to: strings.Fields(v)})
	}
	sort.SliceStable(n.rules, func(i, j int) bool {
		if len(n.rules[i].from) != len(n.rules[j].from) {
			return len(n.rules[i].from) > len(n.rules[j].from)
		}
		return strings.Join(n.rules[i].from, " ") < strings.Join(n.rules[j].from, " ")
	})
}

var defaultNormalizer = New()

// Normalize canonicalizes text with the default tables. It is idempotent:
// Normalize(Normalize(s)) == Normalize(s) for all s.
func Normalize(s string) string {
	return defaultNormalizer.Normalize(s)
}

// ForDisplay trims and collapses whitespace without losing casing or
// punctuation, so resolved labels read the way the page wrote them.
func ForDisplay(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, strips diacritics, splits camel/snake/kebab casing
// into word boundaries, removes punctuation, replaces known abbreviations with
// canonical phrases, and drops stop words and single-character tokens.
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = splitCasing(s)

	if stripped, _, err := transform.String(diacriticStripper, s); err == nil {
		s = stripped
	}

	s = strings.ToLower(s)

	// Punctuation becomes a word boundary rather than vanishing, so
	// "first.name" and "first-name" normalize identically.
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	tokens := n.replaceSynonyms(strings.Fields(b.String()))

	var kept []string
	for _, tok := range tokens {
		// Single letters are noise; single digits are load-bearing
		// ("address line 2" must stay distinct from "address line 1").
		if len(tok) < 2 && !isDigitToken(tok) {
			continue
		}
		if n.stopWords[tok] {
			continue
		}
		kept = append(kept, tok)
	}

	return strings.Join(kept, " ")
}

// replaceSynonyms rewrites token runs using the compiled rules. Replacement
// output is never rescanned; the tables are fixed points of themselves, which
// keeps Normalize idempotent.
func (n *Normalizer) replaceSynonyms(tokens []string) []string {
	if len(tokens) == 0 {
		return tokens
	}
	var out []string
	for i := 0; i < len(tokens); {
		matched := false
		for _, rule := range n.rules {
			if matchesAt(tokens, i, rule.from) {
				out = append(out, rule.to...)
				i += len(rule.from)
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, tokens[i])
			i++
		}
	}
	return out
}

func isDigitToken(tok string) bool {
	for _, r := range tok {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return tok != ""
}

func matchesAt(tokens []string, i int, phrase []string) bool {
	if i+len(phrase) > len(tokens) {
		return false
	}
	for j, p := range phrase {
		if tokens[i+j] != p {
			return false
		}
	}
	return true
}

// splitCasing inserts spaces at camelCase boundaries and replaces snake/kebab
// separators, so identifier-style names tokenize like prose.
func splitCasing(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	runes := []rune(s)
	for i, r := range runes {
		if r == '_' || r == '-' {
			b.WriteRune(' ')
			continue
		}
		if i > 0 && isCaseBoundary(runes[i-1], r, peek(runes, i+1)) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func peek(runes []rune, i int) rune {
	if i < len(runes) {
		return runes[i]
	}
	return 0
}

func isCaseBoundary(prev, cur, next rune) bool {
	if unicode.IsLower(prev) && unicode.IsUpper(cur) {
		return true
	}
	// "ABCDef" splits before "Def", keeping acronym runs intact.
	if unicode.IsUpper(prev) && unicode.IsUpper(cur) && unicode.IsLower(next) {
		return true
	}
	if unicode.IsLetter(prev) && unicode.IsDigit(cur) {
		return true
	}
	if unicode.IsDigit(prev) && unicode.IsLetter(cur) {
		return true
	}
	return false
}
