package page

import (
	"context"
	"testing"
	"testing/fstest"

	pkgpage "github.com/goliatone/go-formfill/pkg/page"
)

const loaderFixture = `<form><label for="e">Email</label><input id="e" type="email"></form>`

func TestLoaderBytesSource(t *testing.T) {
	l := New(pkgpage.NewLoaderOptions())

	doc, err := l.Load(context.Background(), pkgpage.SourceFromBytes("test", []byte(loaderFixture)))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	fields := doc.Fields()
	if len(fields) != 1 || fields[0].ID != "e" {
		t.Fatalf("fields = %+v", fields)
	}
	if doc.Source().Kind() != pkgpage.SourceKindBytes {
		t.Errorf("kind = %q", doc.Source().Kind())
	}
}

func TestLoaderFSSource(t *testing.T) {
	files := fstest.MapFS{
		"pages/claim.html": {Data: []byte(loaderFixture)},
	}
	l := New(pkgpage.NewLoaderOptions(pkgpage.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), pkgpage.SourceFromFS("pages/claim.html"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Fields()) != 1 {
		t.Fatalf("fields = %+v", doc.Fields())
	}
}

func TestLoaderHTTPDisabledByDefault(t *testing.T) {
	l := New(pkgpage.NewLoaderOptions())

	_, err := l.Load(context.Background(), pkgpage.SourceFromURL("http://claims.example/form"))
	if err == nil {
		t.Fatal("expected http-disabled error")
	}
}

func TestLoaderNilSource(t *testing.T) {
	l := New(pkgpage.NewLoaderOptions())
	if _, err := l.Load(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}
