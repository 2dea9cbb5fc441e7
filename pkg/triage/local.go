package triage

import (
	"context"
	"strings"

	"github.com/goliatone/go-formfill/pkg/field"
	"github.com/goliatone/go-formfill/pkg/match"
)

// localConfidence marks heuristic verdicts as weaker than collaborator ones.
const localConfidence = 0.6

// uploadMarkers flag labels that ask for documents even on non-file controls.
var uploadMarkers = []string{
	"upload", "attach", "proof of", "receipt copy", "photo of", "scan of",
}

// unfillableMarkers flag controls that must never be auto-filled.
var unfillableMarkers = []string{
	"captcha", "signature", "do not fill", "leave blank",
}

// Local is the keyword-based fallback classifier. It never calls out and
// never fails: every field gets a verdict.
type Local struct{}

var _ Client = Local{}

// NewLocal returns the heuristic classifier.
func NewLocal() Local {
	return Local{}
}

// Classify classifies the whole batch locally. The error is always nil; the
// signature exists to satisfy Client.
func (l Local) Classify(_ context.Context, fields []field.Descriptor) ([]field.Classification, error) {
	out := make([]field.Classification, 0, len(fields))
	for _, d := range fields {
		out = append(out, l.ClassifyField(d))
	}
	return out, nil
}

// ClassifyField is the per-field heuristic, also used by the orchestrator to
// patch holes in a partial collaborator reply.
func (l Local) ClassifyField(d field.Descriptor) field.Classification {
	c := field.Classification{FieldID: d.ID, Confidence: localConfidence}
	text := strings.ToLower(strings.TrimSpace(d.Label.Text + " " + d.Description))

	switch {
	case d.Type == field.ControlFile || containsAny(text, uploadMarkers):
		c.Category = field.CategoryFileUpload
	case d.Type == field.ControlHidden || d.Type == field.ControlPassword || containsAny(text, unfillableMarkers):
		c.Category = field.CategoryUnfillable
	case match.IsInterrogative(d.Label.Text) || match.IsInterrogative(d.Description):
		c.Category = field.CategoryClaim
		c.Prompt = d.Label.Text
	default:
		c.Category = field.CategoryProfile
	}
	return c
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
