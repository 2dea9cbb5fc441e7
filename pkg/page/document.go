// Package page declares the contracts for acquiring settlement pages and the
// parsed Document the sweep engine operates on. Fetching and field extraction
// are implemented under internal/page; construction helpers that wire the two
// together live in the top-level formfill package.
package page

import (
	"github.com/goliatone/go-formfill/pkg/field"
)

// Document is one fetched and parsed page: the raw markup plus the field
// descriptors extracted from it, in document order.
type Document struct {
	source Source
	raw    []byte
	fields []field.Descriptor
}

// NewDocument assembles a Document from its parts. Loaders call this after
// extraction; the raw bytes are retained for diagnostics and re-parsing.
func NewDocument(src Source, raw []byte, fields []field.Descriptor) Document {
	return Document{source: src, raw: raw, fields: fields}
}

// Source reports where the document came from.
func (d Document) Source() Source { return d.source }

// Raw returns the original markup.
func (d Document) Raw() []byte { return d.raw }

// Fields returns the extracted control descriptors in document order. The
// slice is shared; treat it as read-only.
func (d Document) Fields() []field.Descriptor { return d.fields }
