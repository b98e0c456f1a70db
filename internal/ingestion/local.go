package ingestion

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var extMIME = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
}

// MIMETypeForPath maps a file extension to the MIME type a browser would declare.
func MIMETypeForPath(path string) string {
	if t, ok := extMIME[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}
	return "application/octet-stream"
}

// LoadLocalFiles returns the supported files under root. root may be a single file.
func LoadLocalFiles(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := extMIME[strings.ToLower(filepath.Ext(path))]; ok {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

// ExtractLocalFile runs extractor over a file on disk, declaring the MIME type
// from its extension.
func ExtractLocalFile(ctx context.Context, extractor Extractor, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	return extractor.Extract(ctx, Upload{
		Filename: info.Name(),
		MIMEType: MIMETypeForPath(path),
		Size:     info.Size(),
		Content:  f,
	})
}
