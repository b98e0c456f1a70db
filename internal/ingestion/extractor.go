package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// OCRLanguage is the tesseract language model used for every image.
const OCRLanguage = "eng"

// ErrUnsupportedType is returned for uploads that are neither PDF nor image.
var ErrUnsupportedType = errors.New("unsupported file type")

// Kind is the extraction branch selected by an upload's declared MIME type.
type Kind int

const (
	KindUnsupported Kind = iota
	KindPDF
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindImage:
		return "image"
	default:
		return "unsupported"
	}
}

// Upload is a single request-scoped file. Content must not be retained after
// Extract returns.
type Upload struct {
	Filename string
	MIMEType string
	Size     int64
	Content  io.ReaderAt
}

// PDFExtractor returns the text layer of a PDF document.
type PDFExtractor interface {
	ExtractPDF(ctx context.Context, r io.ReaderAt, size int64) (string, error)
}

// OCREngine recognizes text in an encoded image.
type OCREngine interface {
	Recognize(ctx context.Context, image []byte, lang string) (string, error)
}

// Extractor turns an upload into text.
type Extractor interface {
	Extract(ctx context.Context, u Upload) (string, error)
}

// Classify trusts the declared MIME type; the content is never sniffed.
func Classify(mimeType string) Kind {
	switch {
	case mimeType == "application/pdf":
		return KindPDF
	case strings.HasPrefix(mimeType, "image/"):
		return KindImage
	default:
		return KindUnsupported
	}
}

// Dispatcher routes uploads to the PDF or OCR backend.
type Dispatcher struct {
	PDF PDFExtractor
	OCR OCREngine
}

// Extract detects the upload kind and returns text via PDF extraction or OCR.
func (d *Dispatcher) Extract(ctx context.Context, u Upload) (string, error) {
	kind := Classify(u.MIMEType)
	if kind == KindUnsupported {
		return "", ErrUnsupportedType
	}
	return d.extract(ctx, kind, u)
}

func (d *Dispatcher) extract(ctx context.Context, kind Kind, u Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch kind {
	case KindPDF:
		return d.PDF.ExtractPDF(ctx, u.Content, u.Size)
	case KindImage:
		img, err := io.ReadAll(io.NewSectionReader(u.Content, 0, u.Size))
		if err != nil {
			return "", fmt.Errorf("read image: %w", err)
		}
		return d.OCR.Recognize(ctx, img, OCRLanguage)
	default:
		return "", fmt.Errorf("%w: no backend for kind %d", ErrUnsupportedType, int(kind))
	}
}
