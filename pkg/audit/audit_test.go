package audit_test

import (
	"testing"

	"github.com/goliatone/go-formfill/pkg/audit"
	"github.com/goliatone/go-formfill/pkg/field"
)

func rec(id, label, value string) field.FillRecord {
	return field.FillRecord{FieldID: id, Label: label, Value: value}
}

func TestFlagDistinctLabelsSharingValue(t *testing.T) {
	a := audit.New()
	records := []field.FillRecord{
		rec("f1", "First Name", "Portland"),
		rec("f2", "City", "Portland"),
		rec("f3", "Email", "ada@example.com"),
	}

	flagged := a.Flag(records)
	if len(flagged) != 2 {
		t.Fatalf("flagged = %d records, want 2", len(flagged))
	}
	if !records[0].Suspicious || !records[1].Suspicious {
		t.Error("both sharing records must be flagged in place")
	}
	if records[2].Suspicious {
		t.Error("unique value must not be flagged")
	}
	for _, r := range flagged {
		if r.Value != "Portland" {
			t.Errorf("unexpected flagged record %+v", r)
		}
	}
}

func TestFlagCaseAndSpaceInsensitiveGrouping(t *testing.T) {
	a := audit.New()
	records := []field.FillRecord{
		rec("f1", "Company", "  Acme Corp"),
		rec("f2", "Employer Name", "acme corp "),
	}
	if got := a.Flag(records); len(got) != 2 {
		t.Fatalf("flagged = %d, want 2", len(got))
	}
}

func TestSameLabelRepeatNotFlagged(t *testing.T) {
	a := audit.New()
	// Billing and shipping sections repeat the label verbatim.
	records := []field.FillRecord{
		rec("bill-city", "City", "Portland"),
		rec("ship-city", "city", "Portland"),
	}
	if got := a.Flag(records); len(got) != 0 {
		t.Fatalf("flagged = %v, want none", got)
	}
}

func TestBooleanLikeValuesExempt(t *testing.T) {
	a := audit.New()
	records := []field.FillRecord{
		rec("terms", "Accept terms", "yes"),
		rec("news", "Subscribe to newsletter", "yes"),
		rec("gift", "Is this a gift", "no"),
		rec("warranty", "Extended warranty", "no"),
		rec("qty1", "Units", "1"),
		rec("qty2", "Boxes", "1"),
	}
	if got := a.Flag(records); len(got) != 0 {
		t.Fatalf("boolean-likes flagged: %v", got)
	}
}

func TestFlagNeverReverts(t *testing.T) {
	a := audit.New()
	records := []field.FillRecord{
		rec("f1", "First Name", "Portland"),
		rec("f2", "City", "Portland"),
	}
	a.Flag(records)
	for _, r := range records {
		if r.Value != "Portland" {
			t.Errorf("value changed by audit: %+v", r)
		}
	}
}
