package match_test

import (
	"testing"

	"github.com/goliatone/go-formfill/pkg/field"
	"github.com/goliatone/go-formfill/pkg/match"
	"github.com/goliatone/go-formfill/pkg/semantics"
)

func newMatcher(t *testing.T, options ...match.Option) *match.Matcher {
	t.Helper()
	reg, err := semantics.NewRegistry()
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return match.New(reg, options...)
}

func label(text string) field.AccessibleName {
	return field.AccessibleName{Text: text, Source: field.NameSourceLabelFor}
}

func TestTier0AutocompleteWins(t *testing.T) {
	m := newMatcher(t)

	r := m.Match(field.Descriptor{
		ID:           "contact-email",
		Type:         field.ControlEmail,
		Autocomplete: "email",
		Label:        label("Email Address"),
	})
	if r == nil {
		t.Fatal("expected a match")
	}
	if r.Key != "email" || r.Tier != field.TierDeterministic || r.Confidence != 1.0 {
		t.Fatalf("got %+v, want email at deterministic tier, confidence 1.0", r)
	}
}

func TestPhoneNumberLabelNotSelfSuppressed(t *testing.T) {
	m := newMatcher(t)

	// "Phone Number" is the canonical phone label; no negative remnant may
	// veto it at the deterministic tier.
	r := m.Match(field.Descriptor{
		ID:           "contact-phone",
		Type:         field.ControlTel,
		Autocomplete: "tel",
		Label:        label("Phone Number"),
	})
	if r == nil {
		t.Fatal("expected a match")
	}
	if r.Key != "phone" || r.Tier != field.TierDeterministic || r.Confidence != 1.0 {
		t.Fatalf("got %+v, want phone at deterministic tier, confidence 1.0", r)
	}
}

func TestTier0TypeOnlyUnique(t *testing.T) {
	m := newMatcher(t)

	r := m.Match(field.Descriptor{
		ID:    "f1",
		Type:  field.ControlTel,
		Label: label("Best way to reach you"),
	})
	if r == nil {
		t.Fatal("expected a type-only match")
	}
	if r.Key != "phone" || r.Tier != field.TierDeterministic || r.Confidence != 0.95 {
		t.Fatalf("got %+v, want phone at deterministic tier, confidence 0.95", r)
	}
}

func TestTier0TypeOnlyAmbiguousFallsThrough(t *testing.T) {
	m := newMatcher(t)

	// Both dob and purchase.date accept date controls; the bare type cannot
	// decide, so an unlabeled date field matches nothing.
	r := m.Match(field.Descriptor{ID: "d1", Type: field.ControlDate})
	if r != nil && r.Tier == field.TierDeterministic {
		t.Fatalf("ambiguous type resolved at deterministic tier: %+v", r)
	}
}

func TestTierMonotonicity(t *testing.T) {
	m := newMatcher(t)

	// A descriptor that would satisfy Tier 0, Tier 1, and Tier 2 at once must
	// come back from Tier 0, whatever the scorer thinks.
	r := m.Match(field.Descriptor{
		ID:           "email_address",
		Name:         "email_address",
		Type:         field.ControlEmail,
		Autocomplete: "email",
		Label:        label("Email Address"),
		Position:     1.0, // worst proximity, to tempt the scorer
	})
	if r == nil {
		t.Fatal("expected a match")
	}
	if r.Tier != field.TierDeterministic {
		t.Fatalf("tier = %v, want deterministic", r.Tier)
	}
	if r.Confidence != 1.0 {
		t.Fatalf("confidence = %v, want 1.0", r.Confidence)
	}
}

func TestTier1PatternMatch(t *testing.T) {
	m := newMatcher(t)

	r := m.Match(field.Descriptor{
		ID:    "first_name",
		Name:  "first_name",
		Type:  field.ControlText,
		Label: label("First Name"),
	})
	if r == nil {
		t.Fatal("expected a match")
	}
	if r.Key != "name.first" {
		t.Fatalf("key = %q, want name.first", r.Key)
	}
	if r.Tier > field.TierLiteral {
		t.Fatalf("tier = %v, want pattern or literal", r.Tier)
	}
}

func TestAddressLine2Precedence(t *testing.T) {
	m := newMatcher(t)

	cases := []struct {
		labelText string
		wantKey   string
	}{
		{"Address Line 2", "address.unit"},
		{"Address 2", "address.unit"},
		{"Apt, Unit, Suite", "address.unit"},
		{"Address Line 1", "address.street"},
		{"Street Address", "address.street"},
	}
	for _, tc := range cases {
		r := m.Match(field.Descriptor{ID: "a", Type: field.ControlText, Label: label(tc.labelText)})
		if r == nil {
			t.Fatalf("%q: expected a match", tc.labelText)
		}
		if r.Key != tc.wantKey {
			t.Errorf("%q resolved to %q, want %q", tc.labelText, r.Key, tc.wantKey)
		}
	}

	r := m.Match(field.Descriptor{ID: "b", Type: field.ControlText, Label: label("Apt, Unit, Suite")})
	if r.Tier != field.TierLiteral || r.Confidence != 0.9 {
		t.Fatalf("apt/unit/suite got %+v, want literal tier at 0.9", r)
	}
}

func TestNegativeSignalSuppression(t *testing.T) {
	m := newMatcher(t)

	// "phone" vocabulary but a numeric cap of 10: the negative numeric-range
	// signal must keep the phone key away at every tier.
	max := 10.0
	r := m.Match(field.Descriptor{
		ID:    "phones_bought",
		Name:  "phones_bought",
		Type:  field.ControlNumber,
		Max:   &max,
		Label: label("Phones purchased"),
	})
	if r != nil && r.Key == "phone" {
		t.Fatalf("negative signal ignored: %+v", r)
	}
}

func TestNegativeKeywordSuppression(t *testing.T) {
	m := newMatcher(t)

	r := m.Match(field.Descriptor{
		ID:    "f",
		Type:  field.ControlText,
		Label: label("Company name"),
	})
	if r == nil {
		t.Fatal("expected a match")
	}
	if r.Key == "name.full" || r.Key == "name.first" {
		t.Fatalf("company label resolved to a person-name key: %+v", r)
	}
	if r.Key != "company" {
		t.Fatalf("key = %q, want company", r.Key)
	}
}

func TestQuestionShortCircuit(t *testing.T) {
	m := newMatcher(t)

	for _, text := range []string{
		"How many units did you purchase?",
		"Did you keep the receipt",
		"Describe the issue with your address",
	} {
		r := m.Match(field.Descriptor{ID: "q", Type: field.ControlText, Label: label(text)})
		if r != nil {
			t.Errorf("question %q matched %+v, want nil", text, r)
		}
	}
}

func TestFileAndHiddenNeverMatch(t *testing.T) {
	m := newMatcher(t)

	for _, typ := range []field.ControlType{field.ControlFile, field.ControlHidden, field.ControlPassword} {
		r := m.Match(field.Descriptor{ID: "x", Type: typ, Label: label("Email Address")})
		if r != nil {
			t.Errorf("type %q matched %+v, want nil", typ, r)
		}
	}
}

func TestTier2FuzzyLabel(t *testing.T) {
	m := newMatcher(t)

	// Typo keeps it away from exacts but inside the edit-distance budget.
	r := m.Match(field.Descriptor{
		ID:    "fn",
		Type:  field.ControlText,
		Label: label("Frist Name"),
	})
	if r == nil {
		t.Fatal("expected fuzzy match")
	}
	if r.Key != "name.first" {
		t.Fatalf("key = %q, want name.first", r.Key)
	}
	if r.Tier != field.TierFuzzy {
		t.Fatalf("tier = %v, want fuzzy", r.Tier)
	}
}

func TestTier3KeywordContainment(t *testing.T) {
	m := newMatcher(t)

	r := m.Match(field.Descriptor{
		ID:    "x9",
		Type:  field.ControlText,
		Label: label("Primary postal code on file"),
	})
	if r == nil {
		t.Fatal("expected a match")
	}
	if r.Key != "address.postal" {
		t.Fatalf("key = %q, want address.postal", r.Key)
	}
}

func TestNoMatchReturnsNil(t *testing.T) {
	m := newMatcher(t)

	r := m.Match(field.Descriptor{
		ID:    "z",
		Type:  field.ControlText,
		Label: label("Favorite dinosaur"),
	})
	if r != nil {
		t.Fatalf("unmatchable label produced %+v", r)
	}
}

func TestCustomLiteralRules(t *testing.T) {
	m := newMatcher(t, match.WithLiteralLabels(map[string]string{
		"member id": "email", // nonsense mapping, but exercises precedence
	}))

	r := m.Match(field.Descriptor{ID: "m", Type: field.ControlText, Label: label("Member ID")})
	if r == nil || r.Key != "email" || r.Tier != field.TierLiteral {
		t.Fatalf("custom literal rule not honored: %+v", r)
	}
}
