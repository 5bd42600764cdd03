package textacquire

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

type Format string

const (
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatDocx Format = "docx"
)

// MinTextLen is the contract floor: decoded text trimmed below this is
// rejected as TooShort.
const MinTextLen = 50

// Document is an opaque byte buffer with a declared format tag. It exists
// only for the duration of one Extract call and is never mutated.
type Document struct {
	Data   []byte
	Format Format
}

// FormatFromFilename maps a file extension to a format tag.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(name))) {
	case ".txt", ".text", ".md":
		return FormatText, nil
	case ".pdf":
		return FormatPDF, nil
	case ".docx", ".doc":
		return FormatDocx, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// Extractor turns documents into raw text by dispatching on the format tag.
// PDF and word-processor decoding go through external binaries (pdftotext,
// pandoc); their absence at call time is the recoverable ParserUnavailable.
type Extractor struct {
	runner   Runner
	lookPath func(string) (string, error)
	logger   *log.Logger

	pdftotext string
	pandoc    string
}

func NewExtractor(logger *log.Logger) *Extractor {
	return &Extractor{
		runner:    execRunner{logger: logger},
		lookPath:  exec.LookPath,
		logger:    logger,
		pdftotext: "pdftotext",
		pandoc:    "pandoc",
	}
}

// Extract decodes the document into plain text. The source buffer is never
// modified.
func (e *Extractor) Extract(ctx context.Context, doc Document) (string, error) {
	var (
		text string
		err  error
	)
	switch doc.Format {
	case FormatText:
		text = string(doc.Data)
	case FormatPDF:
		text, err = e.pdfToText(ctx, doc.Data)
	case FormatDocx:
		text, err = e.docxToText(ctx, doc.Data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, doc.Format)
	}
	if err != nil {
		return "", err
	}

	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	if len(strings.TrimSpace(text)) < MinTextLen {
		return "", fmt.Errorf("%w: need at least %d characters", ErrTooShort, MinTextLen)
	}
	return text, nil
}

// pdfToText decodes each page in order and joins per-page text with a
// blank line. pdftotext separates pages with form feeds.
func (e *Extractor) pdfToText(ctx context.Context, data []byte) (string, error) {
	bin, err := e.lookPath(e.pdftotext)
	if err != nil {
		return "", fmt.Errorf("%w: pdftotext not found", ErrParserUnavailable)
	}

	path, cleanup, err := writeTemp(data, "*.pdf")
	if err != nil {
		return "", &DecodeError{Format: FormatPDF, Err: err}
	}
	defer cleanup()

	out, errb, err := e.runner.Run(ctx, bin, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", &DecodeError{Format: FormatPDF, Err: fmt.Errorf("%v: %s", err, strings.TrimSpace(string(errb)))}
	}
	return strings.ReplaceAll(string(out), "\f", "\n\n"), nil
}

func (e *Extractor) docxToText(ctx context.Context, data []byte) (string, error) {
	bin, err := e.lookPath(e.pandoc)
	if err != nil {
		return "", fmt.Errorf("%w: pandoc not found", ErrParserUnavailable)
	}

	path, cleanup, err := writeTemp(data, "*.docx")
	if err != nil {
		return "", &DecodeError{Format: FormatDocx, Err: err}
	}
	defer cleanup()

	out, errb, err := e.runner.Run(ctx, bin, "-f", "docx", "-t", "plain", path)
	if err != nil {
		return "", &DecodeError{Format: FormatDocx, Err: fmt.Errorf("%v: %s", err, strings.TrimSpace(string(errb)))}
	}
	return string(out), nil
}

func writeTemp(data []byte, pattern string) (string, func(), error) {
	f, err := os.CreateTemp("", "joblens-"+pattern)
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
