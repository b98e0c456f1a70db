package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Divas-Gupta30/text-extractor/internal/ingestion"
)

type fileExtractor struct {
	fail map[string]bool
	seen []string
}

func (f *fileExtractor) Extract(_ context.Context, u ingestion.Upload) (string, error) {
	f.seen = append(f.seen, u.Filename)
	if f.fail[u.Filename] {
		return "", errors.New("malformed pdf")
	}
	return "text of " + u.Filename, nil
}

func writeFiles(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		paths = append(paths, path)
	}
	return paths
}

func TestRun(t *testing.T) {
	testCases := []struct {
		name       string
		files      []string
		fail       []string
		wantFailed int
	}{
		{"all succeed", []string{"a.pdf", "b.png"}, nil, 0},
		{"failure in the middle", []string{"a.pdf", "bad.pdf", "c.png"}, []string{"bad.pdf"}, 1},
		{"failure first", []string{"bad.pdf", "b.jpg"}, []string{"bad.pdf"}, 1},
		{"all fail", []string{"x.pdf", "y.png"}, []string{"x.pdf", "y.png"}, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			paths := writeFiles(t, tc.files...)
			ex := &fileExtractor{fail: map[string]bool{}}
			for _, name := range tc.fail {
				ex.fail[name] = true
			}

			var out bytes.Buffer
			failed := run(context.Background(), ex, paths, &out)
			if failed != tc.wantFailed {
				t.Fatalf("run() failed = %d, want %d", failed, tc.wantFailed)
			}
			if len(ex.seen) != len(tc.files) {
				t.Fatalf("extracted %v, want every file in %v", ex.seen, tc.files)
			}
			for i, name := range tc.files {
				if ex.seen[i] != name {
					t.Fatalf("extraction order %v, want %v", ex.seen, tc.files)
				}
				header := "==> " + paths[i] + "\n"
				if ex.fail[name] {
					if strings.Contains(out.String(), header) {
						t.Errorf("output includes failed file %s", name)
					}
					continue
				}
				if !strings.Contains(out.String(), header+"text of "+name+"\n") {
					t.Errorf("output missing %s:\n%s", name, out.String())
				}
			}
		})
	}
}

func TestRunUnsupportedFileIsCounted(t *testing.T) {
	paths := writeFiles(t, "notes.txt", "a.pdf")
	d := &ingestion.Dispatcher{PDF: stubPDF{}}

	var out bytes.Buffer
	if failed := run(context.Background(), d, paths, &out); failed != 1 {
		t.Fatalf("run() failed = %d, want 1", failed)
	}
	if !strings.Contains(out.String(), "==> "+paths[1]+"\npdf text\n") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

type stubPDF struct{}

func (stubPDF) ExtractPDF(context.Context, io.ReaderAt, int64) (string, error) {
	return "pdf text", nil
}
