// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdftext/pkg/types"
)

// BatchResult holds the outcome of a batch extraction run.
type BatchResult struct {
	Extracted int
	Skipped   int
	Failed    int

	// Runs collects a RunRecord per successfully extracted document.
	Runs []types.RunRecord
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Skipped + r.Failed
}

// HasFailures reports whether any documents failed extraction.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ExtractFile extracts a single PDF to outDir/<base>.txt. If the output
// already exists the file is skipped. With metadata set, a YAML sidecar
// summarizing the run is written next to the text file. The returned
// record is non-nil only when extraction actually ran.
func ExtractFile(op Opener, cfg types.BatchConfig, pdfPath string, w io.Writer) (*types.RunRecord, error) {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	outPath := filepath.Join(cfg.OutputDir, base+".txt")

	if _, err := os.Stat(outPath); err == nil {
		fmt.Fprintf(w, "skipped:   %s (already exists)\n", base)
		return nil, nil
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", cfg.OutputDir, err)
	}

	result, err := Run(op, pdfPath, io.Discard)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(outPath, []byte(result.Text()), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outPath, err)
	}

	rec := types.RunRecord{
		PDFPath:       pdfPath,
		OutputPath:    outPath,
		Backend:       cfg.Backend,
		Pages:         result.Pages,
		PagesWithText: len(result.Blocks),
		Characters:    result.Characters(),
		ExtractedAt:   time.Now().UTC(),
	}

	if cfg.Metadata {
		if err := writeSidecar(filepath.Join(cfg.OutputDir, base+".yaml"), rec); err != nil {
			return nil, err
		}
	}

	fmt.Fprintf(w, "extracted: %s (%d/%d pages with text)\n", base, len(result.Blocks), result.Pages)
	return &rec, nil
}

// ExtractBatch processes every *.pdf directly under dir, printing per-file
// status to w and returning a summary. A failing document is reported and
// counted but does not stop the batch.
func ExtractBatch(op Opener, cfg types.BatchConfig, dir string, w io.Writer) (BatchResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return BatchResult{}, fmt.Errorf("reading %s: %w", dir, err)
	}

	var result BatchResult
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		pdfPath := filepath.Join(dir, entry.Name())
		rec, err := ExtractFile(op, cfg, pdfPath, w)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:    %s (%v)\n", entry.Name(), err)
			result.Failed++
		case rec == nil:
			result.Skipped++
		default:
			result.Extracted++
			result.Runs = append(result.Runs, *rec)
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d skipped, %d failed (total: %d)\n",
		result.Extracted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// writeSidecar marshals the run record to a YAML file next to the output.
func writeSidecar(path string, rec types.RunRecord) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling sidecar: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing sidecar %s: %w", path, err)
	}
	return nil
}
