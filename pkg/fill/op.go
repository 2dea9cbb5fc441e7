// Package fill turns a validated value into a WriteOp and hands it to an
// applier. The core never touches a live page: building the op and applying
// it are separate concerns, and event dispatch belongs to the applier.
package fill

import (
	"context"

	"github.com/goliatone/go-formfill/pkg/field"
)

// WriteOp is one fully-resolved change to a control. Value carries the final
// form: for selects and radios the resolved option value, for dates the
// canonical wire format, for text the verbatim input. Check is meaningful
// only for checkboxes.
type WriteOp struct {
	FieldID string
	Type    field.ControlType
	Value   string
	Check   bool
}

// Applier executes a WriteOp against some surface and dispatches the
// notification events a page script would expect.
type Applier interface {
	Apply(ctx context.Context, op WriteOp) error
}

// Event names the synthetic notifications dispatched around a write.
type Event string

const (
	EventFocus  Event = "focus"
	EventInput  Event = "input"
	EventChange Event = "change"
	EventBlur   Event = "blur"
)

// EventsFor returns the dispatch sequence for an op. Text entry simulates
// typing; discrete controls only ever fire change.
func EventsFor(op WriteOp) []Event {
	switch op.Type {
	case field.ControlSelect, field.ControlCheckbox, field.ControlRadio:
		return []Event{EventFocus, EventChange, EventBlur}
	default:
		return []Event{EventFocus, EventInput, EventChange, EventBlur}
	}
}
