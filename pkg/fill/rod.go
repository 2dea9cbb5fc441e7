package fill

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-rod/rod"
	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/pkg/field"
)

// RodApplier executes WriteOps against a live page over CDP. Elements are
// located by id first, then by name; the event sequence is dispatched from
// page script so framework listeners observe it.
type RodApplier struct {
	page   *rod.Page
	logger *zap.Logger
}

var _ Applier = (*RodApplier)(nil)

// RodOption customises a RodApplier.
type RodOption func(*RodApplier)

// WithRodLogger injects a logger; defaults to a nop logger.
func WithRodLogger(logger *zap.Logger) RodOption {
	return func(a *RodApplier) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewRodApplier wraps a live page.
func NewRodApplier(page *rod.Page, options ...RodOption) *RodApplier {
	a := &RodApplier{page: page, logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Apply locates the element, writes the value the way the control expects,
// and fires the notification events.
func (a *RodApplier) Apply(ctx context.Context, op WriteOp) error {
	el, err := a.locate(ctx, op)
	if err != nil {
		return err
	}

	switch op.Type {
	case field.ControlSelect:
		if _, err := el.Eval(`(value) => { this.value = value }`, op.Value); err != nil {
			return fmt.Errorf("fill: set select value: %w", err)
		}
	case field.ControlCheckbox:
		if _, err := el.Eval(`(checked) => { this.checked = checked }`, op.Check); err != nil {
			return fmt.Errorf("fill: set checkbox state: %w", err)
		}
	case field.ControlRadio:
		// The target is the button within the group carrying the value.
		if _, err := el.Eval(`(value) => { this.checked = (this.value === value) }`, op.Value); err != nil {
			return fmt.Errorf("fill: set radio state: %w", err)
		}
	default:
		if _, err := el.Eval(`(value) => { this.value = value }`, op.Value); err != nil {
			return fmt.Errorf("fill: set value: %w", err)
		}
	}

	events := EventsFor(op)
	names := make([]string, len(events))
	for i, ev := range events {
		names[i] = string(ev)
	}
	if _, err := el.Eval(`(names) => {
		for (const name of names) {
			this.dispatchEvent(new Event(name, { bubbles: true }));
		}
	}`, names); err != nil {
		return fmt.Errorf("fill: dispatch events: %w", err)
	}

	a.logger.Debug("live field written", zap.String("field", op.FieldID), zap.String("type", string(op.Type)))
	return nil
}

func (a *RodApplier) locate(ctx context.Context, op WriteOp) (*rod.Element, error) {
	page := a.page.Context(ctx)

	if op.Type == field.ControlRadio {
		sel := fmt.Sprintf(`input[type=radio][name=%s][value=%s]`,
			strconv.Quote(op.FieldID), strconv.Quote(op.Value))
		if el, err := page.Element(sel); err == nil {
			return el, nil
		}
	}

	byID := fmt.Sprintf(`[id=%s]`, strconv.Quote(op.FieldID))
	if el, err := page.Element(byID); err == nil {
		return el, nil
	}
	byName := fmt.Sprintf(`[name=%s]`, strconv.Quote(op.FieldID))
	el, err := page.Element(byName)
	if err != nil {
		return nil, fmt.Errorf("fill: locate %s: %w", op.FieldID, err)
	}
	return el, nil
}
