// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdftext/internal/catalog"
	"github.com/pdiddy/pdftext/internal/extract"
	"github.com/pdiddy/pdftext/internal/reader"
	"github.com/pdiddy/pdftext/pkg/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Extract text from every PDF in a directory",
	Long: `Batch extracts every *.pdf directly under <dir> into out-dir as
<name>.txt, skipping files whose output already exists. A failing
document is reported and counted but does not stop the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("backend", "", "extraction backend: native or pdftotext (default native)")
	batchCmd.Flags().String("out-dir", "", "output directory for extracted text (default text)")
	batchCmd.Flags().Bool("metadata", false, "write a YAML metadata sidecar per extracted document")
	batchCmd.Flags().Bool("record", false, "record the runs in the extraction catalog")
	batchCmd.Flags().String("catalog-dir", "", "base directory for the catalog database (default catalog)")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	backendFlag, _ := cmd.Flags().GetString("backend")
	outDir, _ := cmd.Flags().GetString("out-dir")
	metadata, _ := cmd.Flags().GetBool("metadata")
	record, _ := cmd.Flags().GetBool("record")
	catalogDir, _ := cmd.Flags().GetString("catalog-dir")

	cfg := types.BatchConfig{
		Backend:   types.Backend(stringSetting(backendFlag, "backend", string(types.BackendNative))),
		OutputDir: stringSetting(outDir, "output_dir", "text"),
		Metadata:  metadata,
	}

	op, err := reader.ForBackend(cfg.Backend)
	if err != nil {
		return err
	}

	result, err := extract.ExtractBatch(op, cfg, args[0], cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if record && len(result.Runs) > 0 {
		dir := stringSetting(catalogDir, "catalog_dir", defaultCatalogDir)
		if err := recordBatch(cmd, dir, result.Runs); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: catalog record failed: %v\n", err)
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed extraction", result.Failed)
	}
	return nil
}

func recordBatch(cmd *cobra.Command, catalogDir string, runs []types.RunRecord) error {
	store, err := catalog.Open(types.CatalogConfig{CatalogDir: catalogDir})
	if err != nil {
		return err
	}
	defer store.Close()

	for _, rec := range runs {
		// Batch stores the run statistics only; the text lives in the
		// output files the run already wrote.
		if _, err := store.Record(cmd.Context(), rec, ""); err != nil {
			return err
		}
	}
	return nil
}
