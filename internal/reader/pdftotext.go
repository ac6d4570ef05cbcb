// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/pdiddy/pdftext/internal/extract"
)

const binPdftotext = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunPiped(name string, args []string, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunPiped(name string, args []string, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	return cmd.Run()
}

// PdftotextOpener opens PDFs by running the poppler pdftotext binary and
// splitting its output into pages on the form feeds it emits between them.
type PdftotextOpener struct {
	exec executor
}

// NewPdftotextOpener returns an opener backed by the pdftotext binary on PATH.
func NewPdftotextOpener() *PdftotextOpener {
	return &PdftotextOpener{exec: &osExecutor{}}
}

// Open runs pdftotext over the file at path and captures the page texts.
// The whole document is converted up front; the returned document serves
// pages from memory and needs no cleanup beyond a no-op Close.
func (o *PdftotextOpener) Open(path string) (extract.Document, error) {
	if _, err := o.exec.LookPath(binPdftotext); err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", binPdftotext, err)
	}

	var out bytes.Buffer
	if err := o.exec.RunPiped(binPdftotext, []string{"-enc", "UTF-8", path, "-"}, &out); err != nil {
		return nil, fmt.Errorf("running %s on %s: %w", binPdftotext, path, err)
	}

	// pdftotext terminates every page with a form feed, so the final
	// element of the split is an empty remainder, not a page.
	pages := strings.Split(out.String(), "\f")
	if n := len(pages); n > 0 && pages[n-1] == "" {
		pages = pages[:n-1]
	}
	for i, p := range pages {
		pages[i] = strings.TrimSpace(p)
	}

	return &textDocument{pages: pages}, nil
}

// textDocument serves pre-extracted page texts from memory.
type textDocument struct {
	pages []string
}

func (d *textDocument) PageCount() int {
	return len(d.pages)
}

func (d *textDocument) PageText(i int) (string, error) {
	if i < 1 || i > len(d.pages) {
		return "", fmt.Errorf("page %d out of range 1..%d", i, len(d.pages))
	}
	return d.pages[i-1], nil
}

func (d *textDocument) Close() error { return nil }
