// Package doctext extracts the embedded text layer of uploaded delivery
// documents. Only born-digital documents carry one; scanned images do not
// (OCR is out of scope).
package doctext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNoTextLayer is returned for documents without any extractable text.
var ErrNoTextLayer = errors.New("document has no readable text layer")

// PDFExtractor implements the TextExtractor port using pdfcpu.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor { return &PDFExtractor{} }

// ExtractPages returns one text block per non-empty page, in page order.
func (e *PDFExtractor) ExtractPages(ctx context.Context, doc io.ReadSeeker) ([]string, error) {
	conf := model.NewDefaultConfiguration()

	pdfCtx, err := api.ReadValidateAndOptimize(doc, conf)
	if err != nil {
		return nil, fmt.Errorf("extract pages: read pdf: %w", err)
	}

	pages := make([]string, 0, pdfCtx.PageCount)
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text := pageText(pdfCtx, pageNr)
		if text == "" {
			continue
		}
		pages = append(pages, text)
	}

	if len(pages) == 0 {
		return nil, ErrNoTextLayer
	}

	return pages, nil
}

// pageText pulls the raw content stream of one page and scans it for text
// operators. Pages that cannot be read contribute nothing rather than
// failing the whole document.
func pageText(pdfCtx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
	if err != nil {
		return ""
	}

	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}

	return scanContentStream(data)
}

// literalRe matches PDF string literals: (text here)
var literalRe = regexp.MustCompile(`\(([^)]*)\)`)

// scanContentStream walks the content stream line by line and collects text
// from the show-text operators (Tj, TJ, '), inserting separators for the
// positioning operators (Td, TD, T*).
func scanContentStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range literalRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodeLiteral(m[1]))
			}
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range literalRe.FindAllSubmatch(line, -1) {
				sb.WriteByte('\n')
				sb.WriteString(decodeLiteral(m[1]))
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return normalizeSpace(sb.String())
}

// decodeLiteral resolves the escape sequences of a PDF string literal,
// including octal escapes like \040.
func decodeLiteral(raw []byte) string {
	var sb strings.Builder

	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 == len(raw) {
			sb.WriteByte(raw[i])
			continue
		}

		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		case '0', '1', '2', '3', '4', '5', '6', '7':
			val := int(raw[i] - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		default:
			sb.WriteByte(raw[i])
		}
	}

	return sb.String()
}

// normalizeSpace collapses runs of whitespace but keeps line breaks, since
// the address heuristic downstream is line-oriented.
func normalizeSpace(text string) string {
	var sb strings.Builder
	pendingSpace := false
	pendingBreak := false

	for _, r := range text {
		switch {
		case r == '\n':
			pendingBreak = true
		case unicode.IsSpace(r):
			pendingSpace = true
		case unicode.IsPrint(r):
			if pendingBreak {
				if sb.Len() > 0 {
					sb.WriteByte('\n')
				}
			} else if pendingSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			pendingSpace = false
			pendingBreak = false
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
