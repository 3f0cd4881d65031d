package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

var ErrExtraction = errors.New("pdf text extraction failed")

// Extractor pulls plain text out of PDF files, page by page.
type Extractor struct {
	logger *log.Logger
}

func NewExtractor(logger *log.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract reads the PDF at path and returns the raw text of all pages
// concatenated in page order, with no separator added. Callers normalize the
// text. A readable PDF without text yields "" and no error; every failure
// wraps ErrExtraction.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrExtraction, path)
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("%w: file is empty", ErrExtraction)
	}

	f, r, err := openPDF(path)
	if f != nil {
		defer f.Close()
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	return e.readPages(ctx, r)
}

// ExtractBytes is Extract over an in-memory document.
func (e *Extractor) ExtractBytes(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: file is empty", ErrExtraction)
	}
	r, err := newReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	return e.readPages(ctx, r)
}

func (e *Extractor) readPages(ctx context.Context, r *pdf.Reader) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: malformed document: %v", ErrExtraction, rec)
		}
	}()

	var b strings.Builder
	pages := r.NumPage()
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		s, perr := p.GetPlainText(nil)
		if perr != nil {
			if e.logger != nil {
				e.logger.Printf("[PDF] page skipped page=%d err=%v", i, perr)
			}
			continue
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// The parser panics on some malformed inputs instead of returning an error.
func openPDF(path string) (f *os.File, r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r = nil
			err = fmt.Errorf("malformed document: %v", rec)
		}
	}()
	return pdf.Open(path)
}

func newReader(ra io.ReaderAt, size int64) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r = nil
			err = fmt.Errorf("malformed document: %v", rec)
		}
	}()
	return pdf.NewReader(ra, size)
}
