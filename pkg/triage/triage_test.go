package triage

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfill/pkg/field"
)

func TestParseClassifications(t *testing.T) {
	raw := `{"classifications":[
		{"fieldId":"f1","category":"profile","suggestedKey":"email","confidence":0.9},
		{"fieldId":"f2","category":"claim","promptForUser":"How many units?","confidence":0.8},
		{"fieldId":"","category":"profile"},
		{"fieldId":"f4","category":"banana"}
	]}`

	got, err := parseClassifications(raw)
	if err != nil {
		t.Fatalf("parseClassifications: %v", err)
	}
	want := []field.Classification{
		{FieldID: "f1", Category: field.CategoryProfile, SuggestedKey: "email", Confidence: 0.9},
		{FieldID: "f2", Category: field.CategoryClaim, Prompt: "How many units?", Confidence: 0.8},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("verdicts mismatch (-want +got):\n%s", diff)
	}
}

func TestParseClassificationsCodeFence(t *testing.T) {
	raw := "```json\n{\"classifications\":[{\"fieldId\":\"a\",\"category\":\"profile\"}]}\n```"
	got, err := parseClassifications(raw)
	if err != nil || len(got) != 1 {
		t.Fatalf("got %v, err %v", got, err)
	}
}

func TestParseClassificationsMalformed(t *testing.T) {
	for _, raw := range []string{"", "not json", `{"classifications": "nope"}`} {
		if _, err := parseClassifications(raw); err == nil {
			t.Errorf("raw %q: expected error", raw)
		}
	}
}

func TestLocalClassifier(t *testing.T) {
	l := NewLocal()

	cases := []struct {
		name string
		d    field.Descriptor
		want field.Category
	}{
		{
			name: "file control",
			d:    field.Descriptor{ID: "f", Type: field.ControlFile, Label: field.AccessibleName{Text: "Receipt"}},
			want: field.CategoryFileUpload,
		},
		{
			name: "upload wording on text control",
			d:    field.Descriptor{ID: "f", Type: field.ControlText, Label: field.AccessibleName{Text: "Upload proof of purchase"}},
			want: field.CategoryFileUpload,
		},
		{
			name: "hidden control",
			d:    field.Descriptor{ID: "f", Type: field.ControlHidden},
			want: field.CategoryUnfillable,
		},
		{
			name: "captcha",
			d:    field.Descriptor{ID: "f", Type: field.ControlText, Label: field.AccessibleName{Text: "Enter the captcha text"}},
			want: field.CategoryUnfillable,
		},
		{
			name: "claim question",
			d:    field.Descriptor{ID: "f", Type: field.ControlText, Label: field.AccessibleName{Text: "How many units did you buy?"}},
			want: field.CategoryClaim,
		},
		{
			name: "plain profile field",
			d:    field.Descriptor{ID: "f", Type: field.ControlText, Label: field.AccessibleName{Text: "First Name"}},
			want: field.CategoryProfile,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := l.ClassifyField(tc.d)
			if got.Category != tc.want {
				t.Fatalf("category = %q, want %q", got.Category, tc.want)
			}
			if got.FieldID != tc.d.ID {
				t.Errorf("field id = %q", got.FieldID)
			}
		})
	}
}

func TestLocalClassifyNeverErrors(t *testing.T) {
	l := NewLocal()
	got, err := l.Classify(context.Background(), []field.Descriptor{
		{ID: "a", Type: field.ControlText},
		{ID: "b", Type: field.ControlFile},
	})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("verdicts = %d, want 2", len(got))
	}
}
