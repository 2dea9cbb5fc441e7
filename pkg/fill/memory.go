package fill

import (
	"context"
	"sort"
	"sync"
)

// Dispatched records one event fired against a field, in order.
type Dispatched struct {
	FieldID string
	Event   Event
}

// MemoryApplier applies ops to an in-memory surface: parsed static pages,
// dry runs, and tests. It remembers each field's first-seen value so the
// whole surface can be restored.
type MemoryApplier struct {
	mu        sync.Mutex
	values    map[string]string
	checks    map[string]bool
	originals map[string]string
	events    []Dispatched
}

var _ Applier = (*MemoryApplier)(nil)

// NewMemoryApplier builds an empty surface, optionally seeded with the
// page's current values.
func NewMemoryApplier(seed map[string]string) *MemoryApplier {
	a := &MemoryApplier{
		values:    map[string]string{},
		checks:    map[string]bool{},
		originals: map[string]string{},
	}
	for k, v := range seed {
		a.values[k] = v
	}
	return a
}

// Apply writes the op and records the notification sequence.
func (a *MemoryApplier) Apply(_ context.Context, op WriteOp) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, seen := a.originals[op.FieldID]; !seen {
		a.originals[op.FieldID] = a.values[op.FieldID]
	}
	a.values[op.FieldID] = op.Value
	a.checks[op.FieldID] = op.Check
	for _, ev := range EventsFor(op) {
		a.events = append(a.events, Dispatched{FieldID: op.FieldID, Event: ev})
	}
	return nil
}

// Value returns the current value for a field.
func (a *MemoryApplier) Value(fieldID string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.values[fieldID]
	return v, ok
}

// Checked returns the checkbox state for a field.
func (a *MemoryApplier) Checked(fieldID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.checks[fieldID]
}

// Events returns the dispatch log in order.
func (a *MemoryApplier) Events() []Dispatched {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Dispatched(nil), a.events...)
}

// Restore puts every written field back to its first-seen value and clears
// the dispatch log. Calling it twice is a no-op the second time.
func (a *MemoryApplier) Restore(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	keys := make([]string, 0, len(a.originals))
	for k := range a.originals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		a.values[k] = a.originals[k]
		delete(a.checks, k)
	}
	a.originals = map[string]string{}
	a.events = nil
	return nil
}
