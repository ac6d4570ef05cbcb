// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reader provides the PDF parsing backends behind the extract
// package's Opener interface: a pure-Go text-layer parser and a poppler
// pdftotext wrapper.
package reader

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/pdftext/internal/extract"
	"github.com/pdiddy/pdftext/pkg/types"
)

// ForBackend returns the Opener for the named backend.
func ForBackend(backend types.Backend) (extract.Opener, error) {
	switch backend {
	case types.BackendNative, "":
		return NativeOpener{}, nil
	case types.BackendPdftotext:
		return NewPdftotextOpener(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (expected %q or %q)",
			backend, types.BackendNative, types.BackendPdftotext)
	}
}

// NativeOpener opens PDFs with the pure-Go ledongthuc/pdf parser.
type NativeOpener struct{}

// Open opens the PDF at path. The returned document owns the underlying
// file handle; Close releases it.
func (NativeOpener) Open(path string) (doc extract.Document, err error) {
	// The parser panics rather than returning errors on some malformed
	// cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("opening %s: malformed PDF: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &nativeDocument{
		f:     f,
		r:     r,
		fonts: make(map[string]*pdf.Font),
	}, nil
}

// nativeDocument adapts a pdf.Reader to extract.Document. The font cache
// is shared across pages; fonts repeat heavily within a document and
// decoding them is the expensive part of text extraction.
type nativeDocument struct {
	f     *os.File
	r     *pdf.Reader
	fonts map[string]*pdf.Font
}

func (d *nativeDocument) PageCount() int {
	return d.r.NumPage()
}

func (d *nativeDocument) PageText(i int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed page content: %v", r)
		}
	}()

	p := d.r.Page(i)
	if p.V.IsNull() {
		return "", nil
	}

	for _, name := range p.Fonts() {
		if _, ok := d.fonts[name]; !ok {
			font := p.Font(name)
			d.fonts[name] = &font
		}
	}

	raw, err := p.GetPlainText(d.fonts)
	if err != nil {
		return "", err
	}
	// Whitespace-only pages count as having no recoverable text.
	return strings.TrimSpace(raw), nil
}

func (d *nativeDocument) Close() error {
	return d.f.Close()
}
