// Package page implements page acquisition and field extraction: fetching
// markup from the supported sources, walking the parsed tree for form
// controls, and resolving each control's accessible name.
package page

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	pkgpage "github.com/goliatone/go-formfill/pkg/page"
)

// Loader implements pkgpage.Loader by delegating to file, fs.FS, HTTP, or
// in-memory strategies and running extraction over the fetched markup.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

var _ pkgpage.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgpage.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches the source, extracts its fields, and wraps both in a Document.
func (l *Loader) Load(ctx context.Context, src pkgpage.Source) (pkgpage.Document, error) {
	if src == nil {
		return pkgpage.Document{}, errors.New("page loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case pkgpage.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case pkgpage.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case pkgpage.SourceKindURL:
		if !l.allowHTTP {
			return pkgpage.Document{}, errors.New("page loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	case pkgpage.SourceKindBytes:
		data, err = loadBytes(src)
	default:
		err = errors.New("page loader: unsupported source kind")
	}
	if err != nil {
		return pkgpage.Document{}, err
	}

	fields, err := Fields(data)
	if err != nil {
		return pkgpage.Document{}, err
	}
	return pkgpage.NewDocument(src, data, fields), nil
}

func loadBytes(src pkgpage.Source) ([]byte, error) {
	carrier, ok := src.(interface{ Bytes() []byte })
	if !ok {
		return nil, errors.New("page loader: bytes source carries no data")
	}
	return carrier.Bytes(), nil
}
