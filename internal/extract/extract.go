package extract

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/chaudhari-piyush/talentlens/internal/shared/storage/object"
)

// ExtractText pulls the plain text of a stored PDF resume. It never fails:
// any error, malformed payload, or parser panic yields an empty string so
// the scan pipeline can decide how to degrade.
func ExtractText(ctx context.Context, store object.ObjectStore, fileKey string) string {
	if ctx.Err() != nil {
		return ""
	}

	body, err := store.Open(ctx, fileKey)
	if err != nil {
		return ""
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return ""
	}

	return ExtractTextFromBytes(raw)
}

// ExtractTextFromBytes extracts page text from an in-memory PDF payload.
// Pages are joined with newlines and the result is trimmed. Returns "" for
// anything that is not a readable PDF.
func ExtractTextFromBytes(data []byte) (text string) {
	// The pdf package panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	if len(data) == 0 {
		return ""
	}

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return ""
	}

	var pages []string
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, content)
	}

	return strings.TrimSpace(strings.Join(pages, "\n"))
}
