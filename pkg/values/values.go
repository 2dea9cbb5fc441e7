// Package values holds the data a sweep is allowed to write: a read-only
// profile store addressed by semantic key, and a claim-answer store addressed
// by question text. Stores are built once and never mutated afterwards.
package values

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfill/pkg/field"
	"github.com/goliatone/go-formfill/pkg/textnorm"
)

// Value is a resolved known value together with where it came from.
type Value struct {
	Text       string
	Provenance field.Provenance
}

// Provider resolves semantic keys to known profile values.
type Provider interface {
	Lookup(key string) (Value, bool)
}

// Answerer resolves claim questions to prepared answers.
type Answerer interface {
	Answer(question string) (string, bool)
}

// Store is the default Provider and Answerer. Profile values are addressed
// by dot path ("name.first", "address.city"); claim answers by normalized
// question text.
type Store struct {
	profile map[string]string
	lowered map[string]string
	answers map[string]string
	norm    *textnorm.Normalizer
}

// Option customises a Store.
type Option func(*Store)

// WithProfileValues merges flat dot-path values into the profile store.
func WithProfileValues(m map[string]string) Option {
	return func(s *Store) {
		for k, v := range m {
			s.setProfile(k, v)
		}
	}
}

// WithProfile merges a nested document into the profile store, flattening
// nested maps into dot paths. Non-scalar leaves are skipped.
func WithProfile(doc map[string]any) Option {
	return func(s *Store) {
		flatten("", doc, s.setProfile)
	}
}

// WithClaimAnswers merges prepared answers keyed by question text.
func WithClaimAnswers(m map[string]string) Option {
	return func(s *Store) {
		for q, a := range m {
			s.answers[s.norm.Normalize(q)] = a
		}
	}
}

// WithNormalizer overrides the normalizer used for question lookup. Install
// it before WithClaimAnswers so questions are indexed under the same form.
func WithNormalizer(n *textnorm.Normalizer) Option {
	return func(s *Store) {
		if n != nil {
			s.norm = n
		}
	}
}

// New builds an empty store and applies options.
func New(options ...Option) *Store {
	s := &Store{
		profile: map[string]string{},
		lowered: map[string]string{},
		answers: map[string]string{},
		norm:    textnorm.New(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// FromJSON builds a store from a JSON document of the shape
// {"profile": {...nested...}, "answers": {"question": "answer"}}.
func FromJSON(data []byte, options ...Option) (*Store, error) {
	var doc storeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("values: parse json: %w", err)
	}
	return fromDoc(doc, options), nil
}

// FromYAML is FromJSON for YAML input.
func FromYAML(data []byte, options ...Option) (*Store, error) {
	var doc storeDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("values: parse yaml: %w", err)
	}
	return fromDoc(doc, options), nil
}

type storeDoc struct {
	Profile map[string]any    `json:"profile" yaml:"profile"`
	Answers map[string]string `json:"answers" yaml:"answers"`
}

func fromDoc(doc storeDoc, options []Option) *Store {
	opts := append([]Option(nil), options...)
	opts = append(opts, WithProfile(doc.Profile), WithClaimAnswers(doc.Answers))
	return New(opts...)
}

// Lookup resolves a semantic key. Exact path first, then a case-insensitive
// fallback.
func (s *Store) Lookup(key string) (Value, bool) {
	if v, ok := s.profile[key]; ok {
		return Value{Text: v, Provenance: field.ProvenanceProfile}, true
	}
	if canonical, ok := s.lowered[strings.ToLower(key)]; ok {
		return Value{Text: s.profile[canonical], Provenance: field.ProvenanceProfile}, true
	}
	return Value{}, false
}

// Answer resolves a claim question by its normalized text.
func (s *Store) Answer(question string) (string, bool) {
	a, ok := s.answers[s.norm.Normalize(question)]
	return a, ok
}

// Keys returns the profile paths in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.profile))
	for k := range s.profile {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) setProfile(path, value string) {
	if path == "" {
		return
	}
	s.profile[path] = value
	s.lowered[strings.ToLower(path)] = path
}

func flatten(prefix string, node map[string]any, emit func(path, value string)) {
	for k, v := range node {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		switch t := v.(type) {
		case map[string]any:
			flatten(path, t, emit)
		case string:
			emit(path, t)
		case bool:
			emit(path, strconv.FormatBool(t))
		case int:
			emit(path, strconv.Itoa(t))
		case int64:
			emit(path, strconv.FormatInt(t, 10))
		case float64:
			emit(path, formatFloat(t))
		case json.Number:
			emit(path, t.String())
		case time.Time:
			// yaml resolves unquoted ISO dates into timestamps.
			emit(path, t.Format("2006-01-02"))
		case nil:
			// absent leaf, skip
		}
	}
}

func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
