// Package triage classifies form fields into coarse categories before the
// matcher runs: profile data, claim-specific questions, file uploads, or
// unfillable controls. The primary client batches every field of a sweep into
// one collaborator call; the local classifier covers the failure path with
// keyword heuristics. Either way the verdicts are advisory and re-validated
// downstream.
package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-formfill/pkg/field"
)

// Client classifies a batch of fields. Implementations must make at most one
// remote call per invocation; the orchestrator invokes Classify exactly once
// per sweep.
type Client interface {
	Classify(ctx context.Context, fields []field.Descriptor) ([]field.Classification, error)
}

// batchResponse is the wire shape the collaborator answers with.
type batchResponse struct {
	Classifications []field.Classification `json:"classifications"`
}

// parseClassifications decodes a collaborator reply, tolerating code fences
// and dropping entries with unknown categories or empty field ids. A reply
// with no usable entries is not an error; the caller degrades per field.
func parseClassifications(raw string) ([]field.Classification, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("triage: empty reply")
	}

	var resp batchResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("triage: parse reply: %w", err)
	}

	out := resp.Classifications[:0]
	for _, c := range resp.Classifications {
		if c.FieldID == "" || !knownCategory(c.Category) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func knownCategory(c field.Category) bool {
	switch c {
	case field.CategoryProfile, field.CategoryClaim, field.CategoryFileUpload, field.CategoryUnfillable:
		return true
	}
	return false
}
