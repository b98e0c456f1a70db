package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"io"

	pdf "github.com/ledongthuc/pdf"
)

// PDF extracts the text layer with ledongthuc/pdf.
type PDF struct{}

// ExtractPDF returns the plain text of every page, in page order.
func (PDF) ExtractPDF(ctx context.Context, ra io.ReaderAt, size int64) (text string, err error) {
	// the parser panics on some malformed inputs
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("malformed pdf: %v", rec)
		}
	}()

	r, err := pdf.NewReader(ra, size)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	b, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, b); err != nil {
		return "", err
	}
	return buf.String(), nil
}
