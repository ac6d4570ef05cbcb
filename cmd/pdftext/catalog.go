// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdftext/internal/catalog"
	"github.com/pdiddy/pdftext/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List or search recorded extraction runs",
	Long: `Catalog manages the local SQLite database of recorded extraction runs.
Runs are appended by extract --record and batch --record.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded extraction runs, newest first",
	RunE:  runCatalogList,
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over recorded extraction text",
	Long: `Search runs an FTS5 query over the text stored with recorded runs and
prints the source document and a snippet for each match.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogSearch,
}

func init() {
	catalogCmd.PersistentFlags().String("catalog-dir", "", "base directory for the catalog database (default catalog)")
	catalogCmd.PersistentFlags().Int("max-results", 0, "maximum number of results (default 20)")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	rootCmd.AddCommand(catalogCmd)
}

func catalogStore(cmd *cobra.Command) (*catalog.Store, error) {
	dir, _ := cmd.Flags().GetString("catalog-dir")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return catalog.Open(types.CatalogConfig{
		CatalogDir: stringSetting(dir, "catalog_dir", defaultCatalogDir),
		MaxResults: maxResults,
	})
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	store, err := catalogStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "catalog is empty")
		return nil
	}

	for _, r := range runs {
		dest := r.OutputPath
		if dest == "" {
			dest = "(stdout)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s  %-9s  %3d/%3d pages  %7d chars  %s -> %s\n",
			r.ID, r.ExtractedAt.Format(time.RFC3339), r.Backend,
			r.PagesWithText, r.Pages, r.Characters, r.PDFPath, dest)
	}
	return nil
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	store, err := catalogStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	hits, err := store.Search(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no matches")
		return nil
	}

	for _, h := range hits {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (run %d): %s\n", h.Run.PDFPath, h.Run.ID, h.Snippet)
	}
	return nil
}
