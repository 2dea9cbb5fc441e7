package fill

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/pkg/field"
	"github.com/goliatone/go-formfill/pkg/semantics"
)

// Sentinel errors callers branch on to decide pending reasons.
var (
	ErrValidationFailed   = errors.New("fill: value rejected by validator")
	ErrNoMatchingOption   = errors.New("fill: no option matches value")
	ErrUnsupportedControl = errors.New("fill: control type cannot be filled")
)

// Committer gates every write behind the key's validator and builds the
// control-appropriate WriteOp before handing it to the applier.
type Committer struct {
	registry *semantics.Registry
	applier  Applier
	logger   *zap.Logger
}

// CommitterOption customises a Committer.
type CommitterOption func(*Committer)

// WithLogger injects a logger; defaults to a nop logger.
func WithLogger(logger *zap.Logger) CommitterOption {
	return func(c *Committer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCommitter builds a Committer over the registry and applier.
func NewCommitter(registry *semantics.Registry, applier Applier, options ...CommitterOption) *Committer {
	c := &Committer{registry: registry, applier: applier, logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Commit validates value for key, resolves the write semantics for the
// control, applies it, and returns the op that was written. No write happens
// unless the validator accepted the value.
func (c *Committer) Commit(ctx context.Context, d field.Descriptor, key, value string) (WriteOp, error) {
	// Claim answers carry no semantic key; they are gated on being
	// non-empty. Everything else goes through the key's validator.
	if key == "" {
		if strings.TrimSpace(value) == "" {
			return WriteOp{}, fmt.Errorf("%w: empty answer", ErrValidationFailed)
		}
	} else if !c.registry.Validate(key, value) {
		return WriteOp{}, fmt.Errorf("%w: key %q", ErrValidationFailed, key)
	}

	op, err := buildOp(d, value)
	if err != nil {
		return WriteOp{}, err
	}

	if err := c.applier.Apply(ctx, op); err != nil {
		return WriteOp{}, fmt.Errorf("fill: apply %s: %w", d.ID, err)
	}
	c.logger.Debug("field committed",
		zap.String("field", d.ID), zap.String("key", key), zap.String("type", string(d.Type)))
	return op, nil
}

// buildOp resolves the type-appropriate value semantics.
func buildOp(d field.Descriptor, value string) (WriteOp, error) {
	op := WriteOp{FieldID: d.ID, Type: d.Type}

	switch d.Type {
	case field.ControlFile, field.ControlHidden, field.ControlPassword:
		return WriteOp{}, fmt.Errorf("%w: %s", ErrUnsupportedControl, d.Type)

	case field.ControlSelect:
		// Option values are machine tokens; exact value match wins, then a
		// case-insensitive comparison against value and visible text.
		opt, ok := matchOption(d.Options, value)
		if !ok {
			return WriteOp{}, fmt.Errorf("%w: %s %s", ErrNoMatchingOption, d.Type, d.ID)
		}
		op.Value = opt.Value

	case field.ControlRadio:
		// A radio button is selected by its value attribute alone; folding
		// case here could check the wrong button.
		opt, ok := exactOption(d.Options, value)
		if !ok {
			return WriteOp{}, fmt.Errorf("%w: %s %s", ErrNoMatchingOption, d.Type, d.ID)
		}
		op.Value = opt.Value

	case field.ControlCheckbox:
		checked, ok := booleanish(value)
		if !ok {
			return WriteOp{}, fmt.Errorf("%w: checkbox %s rejects %q", ErrNoMatchingOption, d.ID, value)
		}
		op.Check = checked

	case field.ControlDate:
		canonical, ok := semantics.CanonicalDate(value)
		if !ok {
			return WriteOp{}, fmt.Errorf("%w: date %s rejects %q", ErrValidationFailed, d.ID, value)
		}
		op.Value = canonical

	default:
		op.Value = value
	}
	return op, nil
}

func exactOption(options []field.Option, value string) (field.Option, bool) {
	for _, opt := range options {
		if opt.Value == value {
			return opt, true
		}
	}
	return field.Option{}, false
}

func matchOption(options []field.Option, value string) (field.Option, bool) {
	if opt, ok := exactOption(options, value); ok {
		return opt, true
	}
	folded := strings.ToLower(strings.TrimSpace(value))
	for _, opt := range options {
		if strings.ToLower(strings.TrimSpace(opt.Value)) == folded ||
			strings.ToLower(strings.TrimSpace(opt.Text)) == folded {
			return opt, true
		}
	}
	return field.Option{}, false
}

// booleanish maps affirmative and negative tokens onto a checkbox state.
func booleanish(value string) (checked, ok bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "on", "1", "checked":
		return true, true
	case "no", "false", "off", "0", "":
		return false, true
	}
	return false, false
}
