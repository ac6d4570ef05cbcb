// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DocumentInfo summarizes the extractable content of a PDF document.
type DocumentInfo struct {
	// Path is the location of the source PDF.
	Path string `json:"path" yaml:"path"`

	// Pages is the total page count.
	Pages int `json:"pages" yaml:"pages"`

	// PagesWithText is the number of pages that yielded text.
	PagesWithText int `json:"pages_with_text" yaml:"pages_with_text"`

	// Characters is the total character count of the extracted text.
	Characters int `json:"characters" yaml:"characters"`
}

// RunRecord describes one completed extraction run as stored in the catalog.
type RunRecord struct {
	// ID is the catalog row identifier, assigned on insert.
	ID int64 `json:"id" yaml:"id"`

	// PDFPath is the source document (local path or URL as given).
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// OutputPath is the destination file, empty when stdout was used.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// Backend is the extraction backend that produced the run.
	Backend Backend `json:"backend" yaml:"backend"`

	Pages         int `json:"pages" yaml:"pages"`
	PagesWithText int `json:"pages_with_text" yaml:"pages_with_text"`
	Characters    int `json:"characters" yaml:"characters"`

	// ExtractedAt is the completion time in UTC.
	ExtractedAt time.Time `json:"extracted_at" yaml:"extracted_at"`
}
