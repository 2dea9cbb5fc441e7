package match

import (
	"github.com/goliatone/go-formfill/pkg/field"
	"github.com/goliatone/go-formfill/pkg/semantics"
)

// Composite score weights. Tunable, but tier order always dominates raw
// score: a lower tier's accepted result is never displaced by a higher tier
// scoring more.
const (
	weightTextSimilarity = 0.7
	weightSchemaBonus    = 0.2
	weightDOMProximity   = 0.1

	bonusAutocomplete = 0.5
	bonusAcceptedType = 0.3
	bonusPattern      = 0.2
)

// compositeScore blends text similarity, schema bonus, and document position
// into a single [0,1] score for ranking same-tier candidates.
func compositeScore(d field.Descriptor, e *semantics.Entry, textSim float64) float64 {
	if textSim < 0 {
		textSim = 0
	}
	if textSim > 1 {
		textSim = 1
	}
	return weightTextSimilarity*textSim +
		weightSchemaBonus*schemaBonus(d, e) +
		weightDOMProximity*domProximity(d)
}

// schemaBonus accumulates capped increments for structural agreement between
// the descriptor and the entry.
func schemaBonus(d field.Descriptor, e *semantics.Entry) float64 {
	var bonus float64
	if d.Autocomplete != "" && containsString(e.Positive.Autocomplete, d.Autocomplete) {
		bonus += bonusAutocomplete
	}
	if containsType(e.Positive.Types, d.Type) {
		bonus += bonusAcceptedType
	}
	if matchesIdentifier(e, d) {
		bonus += bonusPattern
	}
	if bonus > 1 {
		bonus = 1
	}
	return bonus
}

// domProximity rewards fields nearer the top of the document: primary
// identity fields conventionally come first.
func domProximity(d field.Descriptor) float64 {
	pos := d.Position
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return 1.0 - 0.5*pos
}

func matchesIdentifier(e *semantics.Entry, d field.Descriptor) bool {
	for _, p := range e.Positive.Patterns {
		if p == nil {
			continue
		}
		if (d.ID != "" && p.MatchString(d.ID)) || (d.Name != "" && p.MatchString(d.Name)) {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsType(types []field.ControlType, t field.ControlType) bool {
	for _, ct := range types {
		if ct == t {
			return true
		}
	}
	return false
}
