// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads remote PDFs to temporary files so the extraction
// pass can treat URLs and local paths uniformly.
package fetch

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pdiddy/pdftext/pkg/types"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const maxRetries = 3

// IsURL reports whether the input names a remote document rather than a
// local file.
func IsURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// Download fetches the PDF at url into a temporary file and returns its
// path. The caller removes the file when done. HTTP 429 responses are
// retried with exponential backoff; any other non-200 status fails. A
// payload that does not start with the PDF magic bytes is rejected before
// anything is written to disk beyond the temp file itself.
func Download(ctx context.Context, client *http.Client, url string, cfg types.HTTPConfig) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := doWithRetry(ctx, client, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp("", "pdftext-*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := checkMagic(tmpPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%s: %w", url, err)
	}

	return tmpPath, nil
}

// doWithRetry executes the request, retrying on HTTP 429 with exponential
// backoff: RetryBaseDelay, then doubled each attempt. The 429 body is
// drained and closed before sleeping. A context cancellation during the
// wait returns ctx.Err(). After exhausting retries the last 429 response
// is returned so the caller reports its status.
func doWithRetry(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// checkMagic verifies the downloaded payload starts with "%PDF-".
func checkMagic(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	magic := make([]byte, 5)
	if _, err := io.ReadFull(f, magic); err != nil {
		return fmt.Errorf("response is not a PDF document")
	}
	if string(magic) != "%PDF-" {
		return fmt.Errorf("response is not a PDF document")
	}
	return nil
}
