package textnorm

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// defaultSynonyms maps normalized abbreviation phrases to their canonical
// forms. Replacement output must not itself be a key: Normalize relies on the
// table being a fixed point of itself.
var defaultSynonyms = map[string]string{
	"dob":           "date of birth",
	"birthdate":     "date of birth",
	"birthday":      "date of birth",
	"zip":           "postal code",
	"zipcode":       "postal code",
	"zip code":      "postal code",
	"postcode":      "postal code",
	"e mail":        "email",
	"mail address":  "email address",
	"fname":         "first name",
	"lname":         "last name",
	"mname":         "middle name",
	"addr":          "address",
	"apt":           "apartment",
	"ste":           "suite",
	"tel":           "phone",
	"telephone":     "phone",
	"mobile":        "phone",
	"cell":          "phone",
	"amt":           "amount",
	"qty":           "quantity",
	"ssn":           "social security number",
	"st":            "street",
	"dollar amount": "amount",
	"usd":           "amount",
}

// defaultStopWords are dropped after synonym replacement. "of" stays out of
// the synonym outputs' way: "date of birth" collapses to "date birth".
var defaultStopWords = []string{
	"a", "an", "the", "of", "your", "my", "our",
	"please", "enter", "input", "type", "provide", "select", "choose",
	"here", "field", "this", "required", "optional", "valid",
	"and", "or", "for", "to", "in", "on", "at", "is", "are",
}

// overridesDoc is the YAML shape for table overrides shipped alongside a
// deployment.
type overridesDoc struct {
	Synonyms  map[string]string `yaml:"synonyms"`
	StopWords []string          `yaml:"stopWords"`
}

// LoadOverrides reads a YAML overrides document and returns the options that
// apply it. An empty document yields no options.
func LoadOverrides(r io.Reader) ([]Option, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("textnorm: read overrides: %w", err)
	}
	var doc overridesDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("textnorm: parse overrides: %w", err)
	}
	var opts []Option
	if len(doc.Synonyms) > 0 {
		opts = append(opts, WithSynonyms(doc.Synonyms))
	}
	if len(doc.StopWords) > 0 {
		opts = append(opts, WithStopWords(doc.StopWords...))
	}
	return opts, nil
}
