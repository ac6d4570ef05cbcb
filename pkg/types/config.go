// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared configuration and record types used
// across the pdftext stages.
package types

import "time"

// HTTPConfig holds shared HTTP settings used when the input is a remote URL.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pdftext/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// Backend identifies the PDF text-extraction backend.
type Backend string

const (
	// BackendNative is the pure-Go text-layer extractor.
	BackendNative Backend = "native"
	// BackendPdftotext shells out to the poppler pdftotext binary.
	BackendPdftotext Backend = "pdftotext"
)

// ExtractConfig holds settings for a single-document extraction run.
type ExtractConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects the extraction backend: native or pdftotext.
	Backend Backend `json:"backend" yaml:"backend"`

	// Record controls whether runs are appended to the catalog.
	Record bool `json:"record" yaml:"record"`

	// CatalogDir is the base directory for the catalog database.
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`
}

// BatchConfig holds settings for batch extraction over a directory.
type BatchConfig struct {
	// Backend selects the extraction backend: native or pdftotext.
	Backend Backend `json:"backend" yaml:"backend"`

	// OutputDir is the directory for the extracted .txt files.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Metadata controls whether a YAML sidecar is written per document.
	Metadata bool `json:"metadata" yaml:"metadata"`
}

// CatalogConfig holds settings for the extraction catalog.
type CatalogConfig struct {
	// CatalogDir is the base directory for the catalog database.
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
