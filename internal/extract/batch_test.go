// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdftext/pkg/types"
)

// selectiveOpener returns a different document or error per file path.
type selectiveOpener struct {
	docs   map[string]*fakeDocument
	errors map[string]error
}

func (s *selectiveOpener) Open(path string) (Document, error) {
	if err, ok := s.errors[path]; ok {
		return nil, err
	}
	if doc, ok := s.docs[path]; ok {
		return doc, nil
	}
	return nil, errors.New("unexpected path: " + path)
}

// setupPDFs creates empty placeholder PDFs in a temp dir and returns the dir.
func setupPDFs(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestExtractBatch(t *testing.T) {
	dir := setupPDFs(t, "a.pdf", "b.pdf", "c.pdf", "notes.txt")
	outDir := filepath.Join(t.TempDir(), "text")

	// Pre-create output for "b" to trigger skip.
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "b.txt"), []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	op := &selectiveOpener{
		docs: map[string]*fakeDocument{
			filepath.Join(dir, "a.pdf"): {pages: []string{"page one", "page two"}},
		},
		errors: map[string]error{
			filepath.Join(dir, "c.pdf"): errors.New("bad pdf"),
		},
	}

	cfg := types.BatchConfig{Backend: types.BackendNative, OutputDir: outDir}
	var log bytes.Buffer

	result, err := ExtractBatch(op, cfg, dir, &log)
	if err != nil {
		t.Fatalf("ExtractBatch: %v", err)
	}

	if result.Extracted != 1 {
		t.Errorf("extracted = %d, want 1", result.Extracted)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if result.Total() != 3 {
		t.Errorf("total = %d, want 3", result.Total())
	}
	if len(result.Runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(result.Runs))
	}
	if result.Runs[0].Pages != 2 || result.Runs[0].PagesWithText != 2 {
		t.Errorf("run record = %+v", result.Runs[0])
	}

	output := log.String()
	for _, want := range []string{"extracted: a", "skipped:   b", "failed:    c.pdf", "Batch summary:"} {
		if !strings.Contains(output, want) {
			t.Errorf("log %q missing %q", output, want)
		}
	}

	// The skipped pre-existing output must be untouched.
	data, err := os.ReadFile(filepath.Join(outDir, "b.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "existing" {
		t.Errorf("skipped output was rewritten: %q", string(data))
	}

	data, err = os.ReadFile(filepath.Join(outDir, "a.txt"))
	if err != nil {
		t.Fatalf("reading extracted output: %v", err)
	}
	want := "--- Page 1 ---\npage one\n\n--- Page 2 ---\npage two\n"
	if string(data) != want {
		t.Errorf("a.txt = %q, want %q", string(data), want)
	}
}

func TestExtractFile_MetadataSidecar(t *testing.T) {
	dir := setupPDFs(t, "doc.pdf")
	outDir := filepath.Join(t.TempDir(), "text")
	pdfPath := filepath.Join(dir, "doc.pdf")

	op := &selectiveOpener{
		docs: map[string]*fakeDocument{
			pdfPath: {pages: []string{"hello", ""}},
		},
	}

	cfg := types.BatchConfig{Backend: types.BackendNative, OutputDir: outDir, Metadata: true}
	var log bytes.Buffer

	rec, err := ExtractFile(op, cfg, pdfPath, &log)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if rec == nil {
		t.Fatal("expected a run record")
	}

	data, err := os.ReadFile(filepath.Join(outDir, "doc.yaml"))
	if err != nil {
		t.Fatalf("reading sidecar: %v", err)
	}

	var got types.RunRecord
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("parsing sidecar: %v", err)
	}
	if got.Pages != 2 || got.PagesWithText != 1 || got.Characters != 5 {
		t.Errorf("sidecar = %+v", got)
	}
	if got.Backend != types.BackendNative {
		t.Errorf("backend = %q", got.Backend)
	}
	if got.ExtractedAt.IsZero() {
		t.Error("sidecar should carry the extraction time")
	}
}

func TestExtractBatch_MissingDir(t *testing.T) {
	op := &selectiveOpener{}
	cfg := types.BatchConfig{OutputDir: t.TempDir()}

	var log bytes.Buffer
	_, err := ExtractBatch(op, cfg, filepath.Join(t.TempDir(), "nope"), &log)
	if err == nil {
		t.Fatal("expected error for missing input directory")
	}
}
