package textnorm_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfill/pkg/textnorm"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "lowercases", input: "First Name", want: "first name"},
		{name: "camel case", input: "firstName", want: "first name"},
		{name: "snake case", input: "first_name", want: "first name"},
		{name: "kebab case", input: "billing-address", want: "billing address"},
		{name: "acronym run", input: "SSNNumber", want: "social security number number"},
		{name: "diacritics", input: "Prénom légal", want: "prenom legal"},
		{name: "punctuation", input: "Apt., Unit/Suite:", want: "apartment unit suite"},
		{name: "dob synonym", input: "DOB", want: "date birth"},
		{name: "zip synonym", input: "ZIP Code", want: "postal code"},
		{name: "zip alone", input: "zip", want: "postal code"},
		{name: "stop words", input: "Please enter your first name here", want: "first name"},
		{name: "single chars dropped", input: "e mail", want: "email"},
		{name: "whitespace collapse", input: "  street \t address \n line ", want: "street address line"},
		{name: "telephone", input: "Telephone No.", want: "phone no"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := textnorm.Normalize(tc.input)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("normalize mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"First Name", "firstName", "DOB", "ZIP Code", "Telephone",
		"Prénom légal", "Apt, Unit, Suite", "Please enter your e-mail",
		"billing_address_line_2", "How many units did you purchase?",
		"", "   ", "a", "ABCDef",
	}
	for _, in := range inputs {
		once := textnorm.Normalize(in)
		twice := textnorm.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalizeWithOverrides(t *testing.T) {
	n := textnorm.New(
		textnorm.WithSynonyms(map[string]string{"pincode": "postal code"}),
		textnorm.WithStopWords("kindly"),
	)
	if got := n.Normalize("Kindly enter PINCODE"); got != "postal code" {
		t.Fatalf("override normalize = %q, want %q", got, "postal code")
	}
}

func TestLoadOverrides(t *testing.T) {
	doc := `
synonyms:
  pincode: postal code
stopWords:
  - kindly
`
	opts, err := textnorm.LoadOverrides(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load overrides: %v", err)
	}
	n := textnorm.New(opts...)
	if got := n.Normalize("kindly share pincode"); got != "share postal code" {
		t.Fatalf("normalize = %q, want %q", got, "share postal code")
	}
}

func TestForDisplay(t *testing.T) {
	if got := textnorm.ForDisplay("  Email   Address \n"); got != "Email Address" {
		t.Fatalf("ForDisplay = %q", got)
	}
}
