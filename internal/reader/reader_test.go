// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/pdftext/pkg/types"
)

func TestForBackend(t *testing.T) {
	tests := []struct {
		name    string
		backend types.Backend
		wantErr bool
	}{
		{name: "native", backend: types.BackendNative},
		{name: "empty defaults to native", backend: ""},
		{name: "pdftotext", backend: types.BackendPdftotext},
		{name: "unknown", backend: "ghostscript", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := ForBackend(tt.backend)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ForBackend: %v", err)
			}
			if op == nil {
				t.Fatal("expected an opener")
			}
		})
	}
}

func TestNativeOpener_MissingFile(t *testing.T) {
	_, err := NativeOpener{}.Open(filepath.Join(t.TempDir(), "missing.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNativeOpener_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.pdf")
	if err := os.WriteFile(path, []byte("just some text, no PDF structure"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NativeOpener{}.Open(path)
	if err == nil {
		t.Fatal("expected error for non-PDF content")
	}
}

// fakeExecutor implements executor with canned pdftotext output.
type fakeExecutor struct {
	lookErr error
	runErr  error
	output  string

	gotName string
	gotArgs []string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.lookErr != nil {
		return "", f.lookErr
	}
	return "/usr/bin/" + file, nil
}

func (f *fakeExecutor) RunPiped(name string, args []string, stdout io.Writer) error {
	f.gotName = name
	f.gotArgs = args
	if f.runErr != nil {
		return f.runErr
	}
	_, err := io.WriteString(stdout, f.output)
	return err
}

func TestPdftotextOpener(t *testing.T) {
	exec := &fakeExecutor{output: "first page\f\nsecond page\n\f\f"}
	op := &PdftotextOpener{exec: exec}

	doc, err := op.Open("in.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer doc.Close()

	if exec.gotName != "pdftotext" {
		t.Errorf("ran %q, want pdftotext", exec.gotName)
	}
	wantArgs := []string{"-enc", "UTF-8", "in.pdf", "-"}
	if fmt.Sprint(exec.gotArgs) != fmt.Sprint(wantArgs) {
		t.Errorf("args = %v, want %v", exec.gotArgs, wantArgs)
	}

	if got := doc.PageCount(); got != 3 {
		t.Fatalf("page count = %d, want 3", got)
	}

	tests := []struct {
		page int
		want string
	}{
		{page: 1, want: "first page"},
		{page: 2, want: "second page"},
		{page: 3, want: ""}, // image-only page: form feed with no text
	}
	for _, tt := range tests {
		got, err := doc.PageText(tt.page)
		if err != nil {
			t.Fatalf("PageText(%d): %v", tt.page, err)
		}
		if got != tt.want {
			t.Errorf("PageText(%d) = %q, want %q", tt.page, got, tt.want)
		}
	}
}

func TestPdftotextOpener_PageOutOfRange(t *testing.T) {
	op := &PdftotextOpener{exec: &fakeExecutor{output: "only\f"}}
	doc, err := op.Open("in.pdf")
	if err != nil {
		t.Fatal(err)
	}
	defer doc.Close()

	if _, err := doc.PageText(0); err == nil {
		t.Error("expected error for page 0")
	}
	if _, err := doc.PageText(2); err == nil {
		t.Error("expected error for page past the end")
	}
}

func TestPdftotextOpener_BinaryMissing(t *testing.T) {
	op := &PdftotextOpener{exec: &fakeExecutor{lookErr: errors.New("not found")}}
	if _, err := op.Open("in.pdf"); err == nil {
		t.Fatal("expected error when pdftotext is not on PATH")
	}
}

func TestPdftotextOpener_RunFailure(t *testing.T) {
	op := &PdftotextOpener{exec: &fakeExecutor{runErr: errors.New("exit status 1")}}
	if _, err := op.Open("broken.pdf"); err == nil {
		t.Fatal("expected error when pdftotext fails")
	}
}
