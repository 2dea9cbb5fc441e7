package page

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// SourceKind discriminates how a page source should be fetched.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindURL   SourceKind = "url"
	SourceKindBytes SourceKind = "bytes"
)

// Source identifies where a page document comes from. Implementations are
// value types created through the SourceFrom* constructors.
type Source interface {
	Location() string
	Kind() SourceKind
}

// fileSource identifies an on-disk HTML document.
type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within an fs.FS.
type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// urlSource references an HTTP/HTTPS endpoint.
type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL parses the supplied URL string and returns a Source. It panics
// if the URL is invalid to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("page: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("page: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}

// bytesSource carries pre-fetched markup, for callers that already hold the
// page in memory.
type bytesSource struct {
	name string
	data []byte
}

func (s bytesSource) Location() string { return s.name }
func (s bytesSource) Kind() SourceKind { return SourceKindBytes }

// Bytes exposes the embedded markup to loaders.
func (s bytesSource) Bytes() []byte { return s.data }

// SourceFromBytes wraps raw markup in a Source. The name is used only for
// diagnostics.
func SourceFromBytes(name string, data []byte) Source {
	if name == "" {
		name = "inline"
	}
	return bytesSource{name: name, data: data}
}
