// Package orchestrator runs the autofill sweep: triage the page's fields in
// one batched call, route profile fields through the matcher and committer,
// answer claim questions from the prepared store, queue everything else for a
// human, then audit the committed values for duplicates. One sweep context is
// built per invocation; the engine keeps no per-page state beyond the applier
// surface it writes through.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/pkg/audit"
	"github.com/goliatone/go-formfill/pkg/field"
	"github.com/goliatone/go-formfill/pkg/fill"
	"github.com/goliatone/go-formfill/pkg/match"
	"github.com/goliatone/go-formfill/pkg/semantics"
	"github.com/goliatone/go-formfill/pkg/triage"
	"github.com/goliatone/go-formfill/pkg/values"
)

// lowConfidenceThreshold separates fills that deserve a second look. Records
// below it are still committed; they are just listed for review.
const lowConfidenceThreshold = 0.8

// suggestionConfidence caps how much trust an advisory triage key gets when
// the matcher itself found nothing.
const suggestionConfidence = 0.5

// Restorer is satisfied by appliers that can undo their writes.
type Restorer interface {
	Restore(ctx context.Context) error
}

// Engine coordinates one page's sweeps.
type Engine struct {
	registry *semantics.Registry
	matcher  *match.Matcher
	applier  fill.Applier
	triage   triage.Client
	local    triage.Local
	values   values.Provider
	answers  values.Answerer
	auditor  *audit.Auditor
	logger   *zap.Logger
	maxFills int
}

// Option customises an Engine.
type Option func(*Engine)

// WithRegistry replaces the built-in semantic schema.
func WithRegistry(r *semantics.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithMatcher replaces the default matcher.
func WithMatcher(m *match.Matcher) Option {
	return func(e *Engine) {
		if m != nil {
			e.matcher = m
		}
	}
}

// WithApplier sets the write surface. Defaults to an in-memory applier.
func WithApplier(a fill.Applier) Option {
	return func(e *Engine) {
		if a != nil {
			e.applier = a
		}
	}
}

// WithTriage installs the batched triage collaborator. Without one, every
// field is classified locally.
func WithTriage(c triage.Client) Option {
	return func(e *Engine) {
		e.triage = c
	}
}

// WithValues installs the profile value provider.
func WithValues(p values.Provider) Option {
	return func(e *Engine) {
		if p != nil {
			e.values = p
		}
	}
}

// WithAnswers installs the claim answer store.
func WithAnswers(a values.Answerer) Option {
	return func(e *Engine) {
		if a != nil {
			e.answers = a
		}
	}
}

// WithMaxFills caps committed fills per sweep; excess fields become pending
// with a rate-limited reason. Zero means no cap.
func WithMaxFills(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxFills = n
		}
	}
}

// WithLogger injects a logger; defaults to a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New assembles an Engine. The zero configuration is fully usable: built-in
// schema, default matcher, in-memory applier, local-only triage, empty
// stores.
func New(options ...Option) (*Engine, error) {
	registry, err := semantics.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build registry: %w", err)
	}

	e := &Engine{
		registry: registry,
		local:    triage.NewLocal(),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.matcher == nil {
		e.matcher = match.New(e.registry, match.WithLogger(e.logger))
	}
	if e.applier == nil {
		e.applier = fill.NewMemoryApplier(nil)
	}
	if e.values == nil || e.answers == nil {
		empty := values.New()
		if e.values == nil {
			e.values = empty
		}
		if e.answers == nil {
			e.answers = empty
		}
	}
	if e.auditor == nil {
		e.auditor = audit.New(
			audit.WithNormalizer(e.registry.Normalizer()),
			audit.WithLogger(e.logger),
		)
	}
	return e, nil
}

// Applier exposes the write surface, mainly so callers using the default
// in-memory applier can inspect what a dry run wrote.
func (e *Engine) Applier() fill.Applier { return e.applier }

// sweepContext is the per-invocation state: verdicts, the committer bound to
// this sweep, and the result being assembled. Nothing in it survives the
// call.
type sweepContext struct {
	committer *fill.Committer
	verdicts  map[string]field.Classification
	result    field.SweepResult
	fills     int
}

// Sweep classifies and fills the given fields, in document order, and
// reports everything it did. Collaborator failures degrade to local
// heuristics; they never fail the sweep.
func (e *Engine) Sweep(ctx context.Context, fields []field.Descriptor) (field.SweepResult, error) {
	sc := &sweepContext{
		committer: fill.NewCommitter(e.registry, e.applier, fill.WithLogger(e.logger)),
		verdicts:  e.classify(ctx, fields),
	}

	for _, d := range fields {
		select {
		case <-ctx.Done():
			return sc.result, ctx.Err()
		default:
		}
		e.sweepField(ctx, sc, d)
	}

	sc.result.Duplicates = e.auditor.Flag(sc.result.Filled)
	e.logger.Info("sweep complete",
		zap.Int("filled", len(sc.result.Filled)),
		zap.Int("pending", len(sc.result.Pending)),
		zap.Int("questions", len(sc.result.UserQuestions)),
		zap.Int("uploads", len(sc.result.FileUploads)),
		zap.Int("duplicates", len(sc.result.Duplicates)))
	return sc.result, nil
}

// classify makes at most one collaborator call, then patches every hole with
// the local heuristic so each field has exactly one verdict.
func (e *Engine) classify(ctx context.Context, fields []field.Descriptor) map[string]field.Classification {
	verdicts := map[string]field.Classification{}

	if e.triage != nil {
		remote, err := e.triage.Classify(ctx, fields)
		if err != nil {
			e.logger.Warn("triage degraded to local heuristics", zap.Error(err))
		}
		for _, c := range remote {
			verdicts[c.FieldID] = c
		}
	}
	for _, d := range fields {
		if _, ok := verdicts[d.ID]; !ok {
			verdicts[d.ID] = e.local.ClassifyField(d)
		}
	}
	return verdicts
}

func (e *Engine) sweepField(ctx context.Context, sc *sweepContext, d field.Descriptor) {
	verdict := sc.verdicts[d.ID]

	switch verdict.Category {
	case field.CategoryUnfillable:
		e.logger.Debug("field skipped as unfillable", zap.String("field", d.ID))
	case field.CategoryFileUpload:
		sc.result.FileUploads = append(sc.result.FileUploads, field.PendingItem{
			FieldID:  d.ID,
			Reason:   field.PendingNoValue,
			Label:    d.Label.Text,
			Required: d.Required,
			Prompt:   firstNonEmpty(verdict.Prompt, d.Label.Text),
		})
	case field.CategoryClaim:
		e.sweepClaim(ctx, sc, d, verdict)
	default:
		e.sweepProfile(ctx, sc, d, verdict)
	}
}

func (e *Engine) sweepClaim(ctx context.Context, sc *sweepContext, d field.Descriptor, verdict field.Classification) {
	question := firstNonEmpty(verdict.Prompt, d.Label.Text, d.Description)
	answer, ok := e.answers.Answer(question)
	if !ok {
		sc.result.UserQuestions = append(sc.result.UserQuestions, field.PendingItem{
			FieldID:  d.ID,
			Reason:   field.PendingNoValue,
			Label:    d.Label.Text,
			Required: d.Required,
			Prompt:   question,
		})
		return
	}
	e.commit(ctx, sc, d, commitRequest{
		value:      answer,
		confidence: 1,
		category:   field.CategoryClaim,
		provenance: field.ProvenanceClaim,
	})
}

func (e *Engine) sweepProfile(ctx context.Context, sc *sweepContext, d field.Descriptor, verdict field.Classification) {
	matched := e.matcher.Match(d)
	if matched == nil {
		if verdict.SuggestedKey != "" && e.registry.Has(verdict.SuggestedKey) {
			// Advisory only: lowest tier, capped confidence, still gated by
			// the key's validator at commit time.
			matched = &field.MatchResult{
				Key:        verdict.SuggestedKey,
				Tier:       field.TierKeyword,
				Confidence: minFloat(verdict.Confidence, suggestionConfidence),
			}
		} else {
			// Optional fields with no match are skipped outright; only
			// required ones escalate for attention.
			if d.Required {
				sc.pend(d, field.PendingNoMatch)
			}
			return
		}
	}

	value, ok := e.values.Lookup(matched.Key)
	if !ok {
		sc.pend(d, field.PendingNoValue)
		return
	}

	e.commit(ctx, sc, d, commitRequest{
		key:        matched.Key,
		value:      value.Text,
		confidence: matched.Confidence,
		tier:       matched.Tier,
		category:   field.CategoryProfile,
		provenance: value.Provenance,
	})
}

type commitRequest struct {
	key        string
	value      string
	confidence float64
	tier       field.Tier
	category   field.Category
	provenance field.Provenance
}

func (e *Engine) commit(ctx context.Context, sc *sweepContext, d field.Descriptor, req commitRequest) {
	if e.maxFills > 0 && sc.fills >= e.maxFills {
		sc.pend(d, field.PendingRateLimited)
		return
	}

	if _, err := sc.committer.Commit(ctx, d, req.key, req.value); err != nil {
		switch {
		case errors.Is(err, fill.ErrValidationFailed),
			errors.Is(err, fill.ErrNoMatchingOption),
			errors.Is(err, fill.ErrUnsupportedControl):
			e.logger.Debug("commit rejected", zap.String("field", d.ID), zap.Error(err))
		default:
			e.logger.Warn("commit failed", zap.String("field", d.ID), zap.Error(err))
		}
		sc.pend(d, field.PendingValidationFailed)
		return
	}

	sc.fills++
	record := field.FillRecord{
		FieldID:    d.ID,
		Key:        req.key,
		Value:      req.value,
		Confidence: req.confidence,
		Tier:       req.tier,
		Category:   req.category,
		Provenance: req.provenance,
		Label:      d.Label.Text,
	}
	sc.result.Filled = append(sc.result.Filled, record)
	if record.Confidence < lowConfidenceThreshold {
		sc.result.LowConfidence = append(sc.result.LowConfidence, record)
	}
}

func (sc *sweepContext) pend(d field.Descriptor, reason field.PendingReason) {
	sc.result.Pending = append(sc.result.Pending, field.PendingItem{
		FieldID:  d.ID,
		Reason:   reason,
		Label:    d.Label.Text,
		Required: d.Required,
	})
}

// Clear restores every written field to its pre-sweep value, when the
// applier supports it. Safe to call at any time, any number of times.
func (e *Engine) Clear(ctx context.Context) error {
	r, ok := e.applier.(Restorer)
	if !ok {
		return fmt.Errorf("orchestrator: applier cannot restore")
	}
	if err := r.Restore(ctx); err != nil {
		return fmt.Errorf("orchestrator: clear: %w", err)
	}
	e.logger.Info("sweep cleared")
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
