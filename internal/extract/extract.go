// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract implements the page-by-page text extraction pass over a
// PDF document. The PDF parser itself sits behind the narrow Opener and
// Document interfaces so backends can be swapped without touching the pass.
package extract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/pdftext/pkg/types"
)

// Document is an opened PDF exposing its pages by 1-based ordinal.
// Implementations must tolerate PageText being called in any order, though
// the extraction pass only ever walks pages 1..PageCount in sequence.
type Document interface {
	// PageCount returns the total number of pages.
	PageCount() int

	// PageText returns the extractable text of page i (1-based). Pages
	// with no recoverable text (pure images, empty pages) return "" and
	// no error.
	PageText(i int) (string, error)

	// Close releases the underlying file and parser resources.
	Close() error
}

// Opener acquires a Document handle for a PDF file on disk.
type Opener interface {
	Open(path string) (Document, error)
}

// Block is one page's contribution to the result: the page ordinal and its
// extracted text.
type Block struct {
	Page int
	Text string
}

// Result is the outcome of a full extraction pass.
type Result struct {
	// Pages is the total page count of the document, including pages
	// that contributed no block.
	Pages int

	// Blocks holds the non-empty pages in ascending page order.
	Blocks []Block
}

// Text renders the result as the final output string: each block prefixed
// with a "--- Page N ---" marker, blocks joined by a blank line. Pages that
// yielded no text contribute nothing, not even an empty marker.
func (r Result) Text() string {
	parts := make([]string, len(r.Blocks))
	for i, b := range r.Blocks {
		parts[i] = fmt.Sprintf("--- Page %d ---\n%s\n", b.Page, b.Text)
	}
	return strings.Join(parts, "\n")
}

// Characters returns the total character count of the extracted text.
func (r Result) Characters() int {
	n := 0
	for _, b := range r.Blocks {
		n += len(b.Text)
	}
	return n
}

// Info converts the result into a DocumentInfo summary for path.
func (r Result) Info(path string) types.DocumentInfo {
	return types.DocumentInfo{
		Path:          path,
		Pages:         r.Pages,
		PagesWithText: len(r.Blocks),
		Characters:    r.Characters(),
	}
}

// Run performs the extraction pass over the PDF at pdfPath: open the
// document, walk pages 1..T in order, report progress to progress, and
// collect the per-page text blocks. The document handle is closed on every
// exit path. Any failure opening the document or reading a page aborts the
// pass; there is no per-page recovery.
func Run(op Opener, pdfPath string, progress io.Writer) (Result, error) {
	doc, err := op.Open(pdfPath)
	if err != nil {
		return Result{}, err
	}
	defer doc.Close()

	total := doc.PageCount()
	result := Result{Pages: total}

	for i := 1; i <= total; i++ {
		fmt.Fprintf(progress, "Processing page %d/%d...\n", i, total)

		text, err := doc.PageText(i)
		if err != nil {
			return Result{}, fmt.Errorf("extracting page %d: %w", i, err)
		}
		if text != "" {
			result.Blocks = append(result.Blocks, Block{Page: i, Text: text})
		}
	}

	return result, nil
}

// Deliver writes the rendered result to outputPath, or to stdout when
// outputPath is empty. File output overwrites any existing file and is
// confirmed with a notice on status; stdout output gets no confirmation.
func Deliver(result Result, outputPath string, stdout, status io.Writer) error {
	if outputPath == "" {
		_, err := fmt.Fprintln(stdout, result.Text())
		return err
	}

	if err := os.WriteFile(outputPath, []byte(result.Text()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	fmt.Fprintf(status, "Text extracted to %s\n", outputPath)
	return nil
}
