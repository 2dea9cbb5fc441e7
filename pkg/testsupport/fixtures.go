// Package testsupport carries shared fixture helpers for package tests:
// building page documents from inline markup and loading saved pages from
// disk without each test re-wiring the loader.
package testsupport

import (
	"context"
	"errors"
	"testing"

	internalpage "github.com/goliatone/go-formfill/internal/page"
	pkgpage "github.com/goliatone/go-formfill/pkg/page"
)

// PageDocument parses inline markup into a Document. Testing helpers fail
// the test on error to keep contract tests concise.
func PageDocument(t *testing.T, markup string) pkgpage.Document {
	t.Helper()

	doc, err := PageDocumentFromBytes("fixture", []byte(markup))
	if err != nil {
		t.Fatalf("build page document: %v", err)
	}
	return doc
}

// PageDocumentFromBytes returns a Document without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func PageDocumentFromBytes(name string, data []byte) (pkgpage.Document, error) {
	if len(data) == 0 {
		return pkgpage.Document{}, errors.New("testsupport: page markup is required")
	}
	loader := internalpage.New(pkgpage.NewLoaderOptions())
	return loader.Load(context.Background(), pkgpage.SourceFromBytes(name, data))
}

// LoadPage reads a saved page fixture from disk and extracts its fields.
func LoadPage(t *testing.T, path string) pkgpage.Document {
	t.Helper()

	loader := internalpage.New(pkgpage.NewLoaderOptions())
	doc, err := loader.Load(context.Background(), pkgpage.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load page %s: %v", path, err)
	}
	return doc
}
