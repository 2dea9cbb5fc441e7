package field

// ControlType enumerates the kinds of form controls the engine understands.
type ControlType string

const (
	ControlText     ControlType = "text"
	ControlEmail    ControlType = "email"
	ControlTel      ControlType = "tel"
	ControlNumber   ControlType = "number"
	ControlDate     ControlType = "date"
	ControlSelect   ControlType = "select"
	ControlCheckbox ControlType = "checkbox"
	ControlRadio    ControlType = "radio"
	ControlTextarea ControlType = "textarea"
	ControlFile     ControlType = "file"
	ControlHidden   ControlType = "hidden"
	ControlURL      ControlType = "url"
	ControlPassword ControlType = "password"
)

// NameSource records which markup signal produced an accessible name.
type NameSource string

const (
	NameSourceAriaLabelledBy NameSource = "aria-labelledby"
	NameSourceAriaLabel      NameSource = "aria-label"
	NameSourceLabelFor       NameSource = "label-for"
	NameSourceLabelWrap      NameSource = "label-wrap"
	NameSourceLegend         NameSource = "legend"
	NameSourcePlaceholder    NameSource = "placeholder"
	NameSourceTitle          NameSource = "title"
	NameSourceSibling        NameSource = "sibling"
	NameSourceNone           NameSource = "none"
)

// AccessibleName is the resolved human-readable label for a control together
// with the signal that produced it. Placeholder and title sit at the bottom of
// the precedence order because pages routinely abuse them for hints.
type AccessibleName struct {
	Text   string     `json:"text"`
	Source NameSource `json:"source"`
}

// Descriptor captures everything the matcher is allowed to know about a single
// form control. It is built once per sweep from the parsed page and carries no
// reference back into the DOM, so matching and scoring stay deterministic and
// testable without a live page.
type Descriptor struct {
	// ID is a stable handle for the element within the sweep: the element id
	// when present, otherwise name, otherwise a synthetic ordinal.
	ID string `json:"id"`

	Name         string      `json:"name,omitempty"`
	Type         ControlType `json:"type"`
	Autocomplete string      `json:"autocomplete,omitempty"`
	InputMode    string      `json:"inputMode,omitempty"`
	Required     bool        `json:"required"`

	// Numeric constraints, present only when the markup declares them.
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Step *float64 `json:"step,omitempty"`

	Label       AccessibleName `json:"label"`
	Description string         `json:"description,omitempty"`
	Placeholder string         `json:"placeholder,omitempty"`

	// Options holds the visible choices for select/radio groups.
	Options []Option `json:"options,omitempty"`

	// Position is the field's vertical position within the document,
	// normalized to [0,1] where 0 is the top. Derived from document order.
	Position float64 `json:"position"`
}

// Option is a single choice inside a closed-choice control.
type Option struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// Tier identifies the evidence bucket that resolved a match. Lower values are
// more trusted and short-circuit the rest of the decision policy.
type Tier int

const (
	TierDeterministic Tier = iota // autocomplete token / accepted type
	TierPattern                   // id/name regex
	TierLiteral                   // curated exact-label table
	TierFuzzy                     // similarity index
	TierKeyword                   // loose keyword containment
)

// String returns the tier's display name.
func (t Tier) String() string {
	switch t {
	case TierDeterministic:
		return "deterministic"
	case TierPattern:
		return "pattern"
	case TierLiteral:
		return "literal"
	case TierFuzzy:
		return "fuzzy"
	case TierKeyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// MatchResult is the matcher's verdict for one descriptor. It is produced at
// most once per field per sweep and never mutated afterwards.
type MatchResult struct {
	Key        string  `json:"key"`
	Tier       Tier    `json:"tier"`
	Confidence float64 `json:"confidence"`
}

// Category is the coarse bucket assigned by triage (remote or local).
type Category string

const (
	CategoryProfile    Category = "profile"
	CategoryClaim      Category = "claim"
	CategoryFileUpload Category = "file_upload"
	CategoryUnfillable Category = "unfillable"
)

// Classification is the advisory verdict for one field from the triage
// collaborator. Nothing in it is trusted: suggested keys that do not exist in
// the schema registry are dropped, and categories outside the known set fall
// back to local heuristics.
type Classification struct {
	FieldID      string   `json:"fieldId"`
	Category     Category `json:"category"`
	SuggestedKey string   `json:"suggestedKey,omitempty"`
	Prompt       string   `json:"promptForUser,omitempty"`
	Confidence   float64  `json:"confidence"`
}

// Provenance records which data source supplied a committed value.
type Provenance string

const (
	ProvenanceProfile Provenance = "profile"
	ProvenanceClaim   Provenance = "claim"
)

// FillRecord exists only after the key's validator accepted the value and the
// value was actually written to the field. Construction anywhere else is a
// bug.
type FillRecord struct {
	FieldID    string     `json:"fieldId"`
	Key        string     `json:"key"`
	Value      string     `json:"value"`
	Confidence float64    `json:"confidence"`
	Tier       Tier       `json:"tier"`
	Category   Category   `json:"category"`
	Provenance Provenance `json:"provenance"`
	Label      string     `json:"label,omitempty"`

	// Suspicious is set by the duplicate auditor after the fill pass. It
	// demotes displayed trust; the committed value is left in place.
	Suspicious bool `json:"suspicious,omitempty"`
}

// PendingReason explains why a field was routed to a human instead of filled.
type PendingReason string

const (
	PendingNoMatch          PendingReason = "no_match"
	PendingValidationFailed PendingReason = "validation_failed"
	PendingNoValue          PendingReason = "no_value"
	PendingRateLimited      PendingReason = "rate_limited"
)

// PendingItem marks a field the engine declined to fill. A field has either a
// FillRecord or a PendingItem within one sweep, never both.
type PendingItem struct {
	FieldID  string        `json:"fieldId"`
	Reason   PendingReason `json:"reason"`
	Label    string        `json:"label,omitempty"`
	Required bool          `json:"required"`
	Prompt   string        `json:"prompt,omitempty"`
}

// SweepResult is the summary handed to callers (and the UI layer) after one
// autofill pass.
type SweepResult struct {
	Filled        []FillRecord  `json:"filled"`
	Pending       []PendingItem `json:"pending"`
	LowConfidence []FillRecord  `json:"lowConfidence"`
	UserQuestions []PendingItem `json:"userQuestions"`
	FileUploads   []PendingItem `json:"fileUploads"`
	Duplicates    []FillRecord  `json:"duplicates"`
}
