// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdftext/internal/catalog"
	"github.com/pdiddy/pdftext/internal/extract"
	"github.com/pdiddy/pdftext/internal/fetch"
	"github.com/pdiddy/pdftext/internal/reader"
	"github.com/pdiddy/pdftext/pkg/types"
)

const (
	defaultTimeout    = 60 * time.Second
	defaultUserAgent  = "pdftext/0.1"
	defaultCatalogDir = "catalog"
)

var extractCmd = &cobra.Command{
	Use:   "extract <input_pdf> [output_txt]",
	Short: "Extract text from a PDF, page by page",
	Long: `Extract walks the pages of a PDF in order and collects their text,
each page prefixed with a "--- Page N ---" marker. The result goes to
[output_txt] when given, otherwise to standard output. Progress is
reported on standard error.

The input may be a local path or an http(s) URL; remote documents are
downloaded to a temporary file first.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("backend", "", "extraction backend: native or pdftotext (default native)")
	extractCmd.Flags().Bool("record", false, "record the run in the extraction catalog")
	extractCmd.Flags().String("catalog-dir", "", "base directory for the catalog database (default catalog)")
	extractCmd.Flags().Duration("timeout", 0, "HTTP timeout for URL inputs (default 60s)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	// Arguments are valid past this point; runtime failures should not
	// reprint the usage text.
	cmd.SilenceUsage = true

	input := args[0]
	output := ""
	if len(args) == 2 {
		output = args[1]
	}

	backendFlag, _ := cmd.Flags().GetString("backend")
	record, _ := cmd.Flags().GetBool("record")
	catalogDir, _ := cmd.Flags().GetString("catalog-dir")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	cfg := types.ExtractConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Backend:    types.Backend(stringSetting(backendFlag, "backend", string(types.BackendNative))),
		Record:     record,
		CatalogDir: stringSetting(catalogDir, "catalog_dir", defaultCatalogDir),
	}

	op, err := reader.ForBackend(cfg.Backend)
	if err != nil {
		return err
	}

	pdfPath := input
	if fetch.IsURL(input) {
		client := &http.Client{Timeout: cfg.Timeout}
		tmpPath, err := fetch.Download(cmd.Context(), client, input, cfg.HTTPConfig)
		if err != nil {
			return err
		}
		defer os.Remove(tmpPath)
		pdfPath = tmpPath
	}

	result, err := extract.Run(op, pdfPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if err := extract.Deliver(result, output, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
		return err
	}

	if cfg.Record {
		rec := types.RunRecord{
			PDFPath:       input,
			OutputPath:    output,
			Backend:       cfg.Backend,
			Pages:         result.Pages,
			PagesWithText: len(result.Blocks),
			Characters:    result.Characters(),
			ExtractedAt:   time.Now().UTC(),
		}
		if err := recordRun(cmd, cfg.CatalogDir, rec, result.Text()); err != nil {
			// The extraction itself succeeded; a catalog problem is a
			// warning, not a failure.
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: catalog record failed: %v\n", err)
		}
	}

	return nil
}

func recordRun(cmd *cobra.Command, catalogDir string, rec types.RunRecord, text string) error {
	store, err := catalog.Open(types.CatalogConfig{CatalogDir: catalogDir})
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Record(cmd.Context(), rec, text)
	return err
}
