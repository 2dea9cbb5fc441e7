// Package formfill is the top-level entry point for the autofill engine: it
// re-exports the sweep orchestrator and wires the internal page loader to the
// public contracts, so most callers only import this package and pkg/page
// sources.
package formfill

import (
	"context"

	internalpage "github.com/goliatone/go-formfill/internal/page"
	"github.com/goliatone/go-formfill/pkg/field"
	"github.com/goliatone/go-formfill/pkg/orchestrator"
	pkgpage "github.com/goliatone/go-formfill/pkg/page"
)

// SweepResult summarises one autofill pass.
type SweepResult = field.SweepResult

// FillRecord is one committed fill.
type FillRecord = field.FillRecord

// PendingItem is one field routed to a human.
type PendingItem = field.PendingItem

// Engine coordinates sweeps; alias exported via the root package for
// convenience.
type Engine = orchestrator.Engine

// Option configures an Engine.
type Option = orchestrator.Option

// NewEngine exposes the orchestrator constructor from the top-level module.
func NewEngine(options ...Option) (*Engine, error) {
	return orchestrator.New(options...)
}

// NewPageLoader builds the default page loader over the requested sources.
// Construction lives here to keep pkg/page free of internal imports.
func NewPageLoader(options ...pkgpage.LoaderOption) pkgpage.Loader {
	return internalpage.New(pkgpage.NewLoaderOptions(options...))
}

// Sweep loads a page source and runs one sweep over its fields. It is the
// simplest entry point for callers that just want a filled summary.
func Sweep(ctx context.Context, source pkgpage.Source, options ...Option) (SweepResult, error) {
	doc, err := NewPageLoader().Load(ctx, source)
	if err != nil {
		return SweepResult{}, err
	}
	engine, err := NewEngine(options...)
	if err != nil {
		return SweepResult{}, err
	}
	return engine.Sweep(ctx, doc.Fields())
}

// SweepDocument runs one sweep over a pre-loaded document, bypassing the
// loader stage.
func SweepDocument(ctx context.Context, doc pkgpage.Document, options ...Option) (SweepResult, error) {
	engine, err := NewEngine(options...)
	if err != nil {
		return SweepResult{}, err
	}
	return engine.Sweep(ctx, doc.Fields())
}
