package semantics_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfill/pkg/semantics"
)

func TestNewRegistryBuiltins(t *testing.T) {
	reg, err := semantics.NewRegistry()
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	for _, key := range []string{"name.first", "name.last", "email", "phone", "address.street", "address.unit", "address.postal", "dob", "purchase.amount"} {
		if !reg.Has(key) {
			t.Errorf("registry missing built-in key %q", key)
		}
	}

	entry, ok := reg.Get("address.unit")
	if !ok {
		t.Fatal("address.unit entry not found")
	}
	found := false
	for _, kw := range entry.NormalizedKeywords() {
		if kw == "address line 2" {
			found = true
		}
	}
	if !found {
		t.Errorf("address.unit normalized keywords %v missing %q", entry.NormalizedKeywords(), "address line 2")
	}
}

func TestRegistryDuplicateKey(t *testing.T) {
	entries := []*semantics.Entry{
		{Key: "email"},
		{Key: "email"},
	}
	if _, err := semantics.NewRegistryFromEntries(entries); err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestCollapsedSignalPhrasesDropped(t *testing.T) {
	// Stop-word removal can gut a phrase down to one generic token. Such a
	// remnant must never enter the signal tables: "number of" surviving as
	// "number" would suppress every "Phone Number" label, and "your name"
	// surviving as "name" would window-match inside unrelated labels.
	entries := []*semantics.Entry{
		{
			Key: "x",
			Positive: semantics.Signals{
				Keywords: []string{"your name", "full name"},
			},
			Negative: semantics.Signals{
				Keywords: []string{"number of"},
			},
		},
	}
	reg, err := semantics.NewRegistryFromEntries(entries)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	e, _ := reg.Get("x")
	if diff := cmp.Diff([]string{"full name"}, e.NormalizedKeywords()); diff != "" {
		t.Errorf("positive keywords (-want +got):\n%s", diff)
	}
	if got := e.NormalizedNegativeKeywords(); len(got) != 0 {
		t.Errorf("negative keywords = %v, want none", got)
	}
}

func TestBuiltinSignalsCarryNoBareGenericTokens(t *testing.T) {
	reg, err := semantics.NewRegistry()
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	for _, e := range reg.Entries() {
		for _, kw := range e.NormalizedNegativeKeywords() {
			if kw == "number" || kw == "name" {
				t.Errorf("%s: negative keyword %q is too generic", e.Key, kw)
			}
		}
	}
	full, _ := reg.Get("name.full")
	for _, kw := range full.NormalizedKeywords() {
		if kw == "name" {
			t.Error("name.full carries the bare token \"name\"")
		}
	}
}

func TestValidatorsAreTotal(t *testing.T) {
	reg, err := semantics.NewRegistry()
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	hostile := []string{"", "   ", "\x00", "💥", string(make([]byte, 1<<12)), "' OR 1=1 --"}
	for _, e := range reg.Entries() {
		for _, v := range hostile {
			// Must not panic; result just has to be a boolean.
			_ = e.Validate(v)
		}
	}
}

func TestBuiltinValidators(t *testing.T) {
	reg, err := semantics.NewRegistry()
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	cases := []struct {
		key   string
		value string
		want  bool
	}{
		{"email", "jane@example.com", true},
		{"email", "not-an-email", false},
		{"email", "a b@example.com", false},
		{"phone", "+1 (919) 555-0133", true},
		{"phone", "12345", false},
		{"phone", "call me maybe", false},
		{"address.postal", "27510", true},
		{"address.postal", "K1A 0B1", true},
		{"address.postal", "!", false},
		{"dob", "1985-04-12", true},
		{"dob", "04/12/1985", true},
		{"dob", "yesterday", false},
		{"purchase.amount", "$1,299.99", true},
		{"purchase.amount", "lots", false},
		{"name.first", "Jane", true},
		{"name.first", "Jane123", false},
		{"address.street", "21 Maple Ave", true},
		{"address.street", "", false},
	}
	for _, tc := range cases {
		if got := reg.Validate(tc.key, tc.value); got != tc.want {
			t.Errorf("Validate(%q, %q) = %v, want %v", tc.key, tc.value, got, tc.want)
		}
	}

	if reg.Validate("no.such.key", "anything") {
		t.Error("unknown key must never validate")
	}
}

func TestOpenAPIValidatorOverlay(t *testing.T) {
	doc := []byte(`{
  "openapi": "3.0.0",
  "info": {"title": "profile", "version": "1"},
  "paths": {},
  "components": {
    "schemas": {
      "ProfileData": {
        "type": "object",
        "properties": {
          "email": {"type": "string", "pattern": "^[a-z]+@corp\\.example$"},
          "purchase.quantity": {"type": "integer", "maximum": 10}
        }
      }
    }
  }
}`)
	reg, err := semantics.NewRegistry(semantics.WithOpenAPIValidators(doc))
	if err != nil {
		t.Fatalf("new registry with schema: %v", err)
	}

	cases := []struct {
		key   string
		value string
		want  bool
	}{
		{"email", "jane@corp.example", true},
		{"email", "jane@gmail.com", false},
		{"purchase.quantity", "5", true},
		{"purchase.quantity", "50", false},
		{"purchase.quantity", "many", false},
	}
	for _, tc := range cases {
		if got := reg.Validate(tc.key, tc.value); got != tc.want {
			t.Errorf("Validate(%q, %q) = %v, want %v", tc.key, tc.value, got, tc.want)
		}
	}
}

func TestKeysSorted(t *testing.T) {
	reg, err := semantics.NewRegistry()
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	keys := reg.Keys()
	sorted := append([]string(nil), keys...)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1] > sorted[i] {
			t.Fatalf("keys not sorted: %v", keys)
		}
	}
	if diff := cmp.Diff(len(reg.Entries()), len(keys)); diff != "" {
		t.Fatalf("key count mismatch (-want +got):\n%s", diff)
	}
}
