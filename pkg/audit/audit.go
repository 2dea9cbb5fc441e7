// Package audit runs the post-fill duplicate check: the same value committed
// under textually distinct labels usually means one of the matches is wrong.
// Flags demote trust on the records; nothing is ever reverted automatically.
package audit

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/pkg/field"
	"github.com/goliatone/go-formfill/pkg/textnorm"
)

// booleanLike values are expected to repeat across consent boxes and yes/no
// groups, so they never count as duplicates.
var booleanLike = map[string]bool{
	"yes": true, "no": true,
	"true": true, "false": true,
	"on": true, "off": true,
	"0": true, "1": true,
}

// Auditor groups committed values and flags suspicious repeats.
type Auditor struct {
	norm   *textnorm.Normalizer
	logger *zap.Logger
}

// Option customises an Auditor.
type Option func(*Auditor)

// WithNormalizer overrides the label normalizer.
func WithNormalizer(n *textnorm.Normalizer) Option {
	return func(a *Auditor) {
		if n != nil {
			a.norm = n
		}
	}
}

// WithLogger injects a logger; defaults to a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Auditor) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New builds an Auditor.
func New(options ...Option) *Auditor {
	a := &Auditor{norm: textnorm.New(), logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Flag marks every record that shares its committed value with a record
// carrying a textually distinct label. The slice is updated in place; the
// returned subset preserves record order. Records with boolean-like or empty
// values are exempt.
func (a *Auditor) Flag(records []field.FillRecord) []field.FillRecord {
	groups := map[string][]int{}
	for i, r := range records {
		v := strings.ToLower(strings.TrimSpace(r.Value))
		if v == "" || booleanLike[v] {
			continue
		}
		groups[v] = append(groups[v], i)
	}

	var hits []int
	for value, idxs := range groups {
		if len(idxs) < 2 {
			continue
		}
		labels := map[string]bool{}
		for _, i := range idxs {
			labels[a.norm.Normalize(records[i].Label)] = true
		}
		if len(labels) < 2 {
			// Same label repeated: duplicated markup, not a bad match.
			continue
		}
		a.logger.Warn("duplicate value across distinct labels",
			zap.String("value", value), zap.Int("fields", len(idxs)))
		hits = append(hits, idxs...)
	}

	sort.Ints(hits)
	flagged := make([]field.FillRecord, 0, len(hits))
	for _, i := range hits {
		records[i].Suspicious = true
		flagged = append(flagged, records[i])
	}
	return flagged
}
