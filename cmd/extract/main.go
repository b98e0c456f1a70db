package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Divas-Gupta30/text-extractor/internal/ingestion"
	"github.com/Divas-Gupta30/text-extractor/internal/ingestion/tesseract"
)

func main() {
	path := flag.String("path", "./data", "file or folder to extract text from")
	flag.Parse()

	files, err := ingestion.LoadLocalFiles(*path)
	if err != nil {
		log.Fatal("load files:", err)
	}
	if len(files) == 0 {
		fmt.Println("No PDF or image files found in", *path)
		os.Exit(1)
	}

	extractor := &ingestion.Dispatcher{PDF: ingestion.PDF{}, OCR: tesseract.New()}
	failed := run(context.Background(), extractor, files, os.Stdout)
	if failed > 0 {
		log.Printf("%d of %d files failed", failed, len(files))
		os.Exit(1)
	}
}

// run extracts each file in turn and returns how many failed. A failure is
// logged and does not stop the remaining files.
func run(ctx context.Context, extractor ingestion.Extractor, files []string, out io.Writer) int {
	failed := 0
	for _, f := range files {
		text, err := ingestion.ExtractLocalFile(ctx, extractor, f)
		if err != nil {
			log.Println("skip file:", f, "err:", err)
			failed++
			continue
		}
		fmt.Fprintf(out, "==> %s\n%s\n\n", f, text)
	}
	return failed
}
