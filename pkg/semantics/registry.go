// Package semantics holds the static mapping from semantic keys to the
// signals and validators the matcher consults. The registry is loaded once at
// startup and is read-only afterwards.
package semantics

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/goliatone/go-formfill/pkg/field"
	"github.com/goliatone/go-formfill/pkg/textnorm"
)

// DataType declares what kind of value an entry expects.
type DataType string

const (
	TypeText   DataType = "text"
	TypeEmail  DataType = "email"
	TypePhone  DataType = "phone"
	TypeDate   DataType = "date"
	TypeNumber DataType = "number"
	TypePostal DataType = "postal"
)

// Signals groups the evidence shapes an entry declares, positive or negative.
type Signals struct {
	// Autocomplete tokens, matched exactly against the field attribute.
	Autocomplete []string

	// Keywords are phrases matched against normalized label text. They are
	// normalized with the registry's normalizer when the registry is built.
	Keywords []string

	// Patterns run against the raw id/name attributes.
	Patterns []*regexp.Regexp

	// Types lists control types the entry accepts (positive) or rejects
	// (negative).
	Types []field.ControlType

	// MaxBelow, when set on negative signals, disqualifies the entry for
	// numeric fields whose declared maximum is under the threshold. A
	// "phone" that caps at 99 is a unit counter, not a phone number.
	MaxBelow *float64
}

// Entry describes one semantic key. Validate must be total over arbitrary
// input: invalid values return false, nothing panics.
type Entry struct {
	Key      string
	Type     DataType
	Positive Signals
	Negative Signals
	Validate func(value string) bool

	// normKeywords caches the normalized positive keywords; filled in by the
	// registry so matching never re-normalizes per field.
	normKeywords    []string
	normNegKeywords []string
}

// NormalizedKeywords returns the entry's positive keywords in matching form.
func (e *Entry) NormalizedKeywords() []string { return e.normKeywords }

// NormalizedNegativeKeywords returns the negative keywords in matching form.
func (e *Entry) NormalizedNegativeKeywords() []string { return e.normNegKeywords }

// Registry is the immutable key → Entry table. Build it with NewRegistry (the
// built-in table) or NewRegistryFromEntries.
type Registry struct {
	entries map[string]*Entry
	ordered []*Entry
	norm    *textnorm.Normalizer
}

// RegistryOption customises registry construction.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	norm       *textnorm.Normalizer
	entries    []*Entry
	openapiDoc []byte
}

// WithNormalizer injects the normalizer used to canonicalize keywords. It
// must be the same normalizer the matcher applies to labels, or keyword
// comparisons silently miss.
func WithNormalizer(n *textnorm.Normalizer) RegistryOption {
	return func(cfg *registryConfig) {
		cfg.norm = n
	}
}

// WithEntries appends additional entries to the built-in table.
func WithEntries(entries ...*Entry) RegistryOption {
	return func(cfg *registryConfig) {
		cfg.entries = append(cfg.entries, entries...)
	}
}

// NewRegistry builds the registry from the built-in table plus options.
func NewRegistry(options ...RegistryOption) (*Registry, error) {
	cfg := registryConfig{norm: textnorm.New()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	all := append(builtinEntries(), cfg.entries...)
	return newRegistry(all, cfg)
}

// NewRegistryFromEntries builds a registry from an explicit entry set,
// bypassing the built-in table. Used by tests and by callers with bespoke
// schemas.
func NewRegistryFromEntries(entries []*Entry, options ...RegistryOption) (*Registry, error) {
	cfg := registryConfig{norm: textnorm.New()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	all := append(entries, cfg.entries...)
	return newRegistry(all, cfg)
}

func newRegistry(entries []*Entry, cfg registryConfig) (*Registry, error) {
	norm := cfg.norm
	r := &Registry{
		entries: make(map[string]*Entry, len(entries)),
		norm:    norm,
	}
	for _, e := range entries {
		if e == nil {
			continue
		}
		if e.Key == "" {
			return nil, fmt.Errorf("semantics: entry key is required")
		}
		if _, exists := r.entries[e.Key]; exists {
			return nil, fmt.Errorf("semantics: entry %q already registered", e.Key)
		}
		if e.Validate == nil {
			e.Validate = validateNonEmpty
		}
		e.normKeywords = normalizeAll(norm, e.Positive.Keywords)
		e.normNegKeywords = normalizeAll(norm, e.Negative.Keywords)
		r.entries[e.Key] = e
		r.ordered = append(r.ordered, e)
	}
	if len(cfg.openapiDoc) > 0 {
		if err := applyOpenAPIValidators(r, cfg.openapiDoc); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func normalizeAll(norm *textnorm.Normalizer, phrases []string) []string {
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		n := norm.Normalize(p)
		if n == "" {
			continue
		}
		// A multi-word phrase that normalization shrinks to one token has
		// lost the words that made it specific. "number of" surviving as
		// bare "number" would hit every "Phone Number" label, so the
		// remnant is dropped rather than registered.
		if len(strings.Fields(p)) > 1 && !strings.Contains(n, " ") {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Get retrieves an entry by key.
func (r *Registry) Get(key string) (*Entry, bool) {
	e, ok := r.entries[key]
	return e, ok
}

// Has reports whether a key exists.
func (r *Registry) Has(key string) bool {
	_, ok := r.entries[key]
	return ok
}

// Entries returns the entries in registration order.
func (r *Registry) Entries() []*Entry {
	return r.ordered
}

// Keys returns a sorted list of registered keys.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Normalizer exposes the normalizer the registry canonicalized keywords with.
func (r *Registry) Normalizer() *textnorm.Normalizer {
	return r.norm
}

// Validate runs the key's validator over a candidate value. Unknown keys are
// invalid by definition.
func (r *Registry) Validate(key, value string) bool {
	e, ok := r.entries[key]
	if !ok {
		return false
	}
	return e.Validate(value)
}
