// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdftext/internal/extract"
	"github.com/pdiddy/pdftext/internal/reader"
	"github.com/pdiddy/pdftext/pkg/types"
)

var infoCmd = &cobra.Command{
	Use:   "info <input_pdf>",
	Short: "Summarize a PDF's extractable content as YAML",
	Long: `Info runs the extraction pass without writing any text output and
prints a YAML summary: page count, pages with text, and character count.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().String("backend", "", "extraction backend: native or pdftotext (default native)")

	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	backendFlag, _ := cmd.Flags().GetString("backend")
	backend := types.Backend(stringSetting(backendFlag, "backend", string(types.BackendNative)))

	op, err := reader.ForBackend(backend)
	if err != nil {
		return err
	}

	result, err := extract.Run(op, args[0], io.Discard)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(result.Info(args[0]))
	if err != nil {
		return fmt.Errorf("marshaling info: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
