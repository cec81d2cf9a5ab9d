package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"
	"unicode/utf8"

	"trustlabel/internal/domain"
)

// TextSource turns a raw document into plain text for extraction.
type TextSource func(doc domain.RawDocument) (string, error)

func defaultSources() map[string]TextSource {
	return map[string]TextSource{
		"":                        plainText,
		domain.MediaTypePlainText: plainText,
		domain.MediaTypeCSV:       csvText,
	}
}

// readText resolves the document's media type to a source and checks the
// result is valid UTF-8.
func (p *Parser) readText(doc domain.RawDocument) (string, error) {
	mediaType := strings.TrimSpace(doc.MediaType)
	if mediaType != "" {
		mt, _, err := mime.ParseMediaType(mediaType)
		if err != nil {
			return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedMediaType, doc.MediaType)
		}
		mediaType = mt
	}
	src, ok := p.sources[mediaType]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedMediaType, mediaType)
	}
	text, err := src(doc)
	if err != nil {
		if errors.Is(err, domain.ErrUnreadableDocument) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", domain.ErrUnreadableDocument, err)
	}
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("%w: invalid UTF-8", domain.ErrUnreadableDocument)
	}
	return strings.TrimPrefix(text, "\ufeff"), nil
}

func plainText(doc domain.RawDocument) (string, error) {
	return doc.Text, nil
}

// csvText flattens each record into one line with cells separated by spaces,
// so a row like "Lead,0.02,mg/kg" reads as "Lead 0.02 mg/kg".
func csvText(doc domain.RawDocument) (string, error) {
	r := csv.NewReader(strings.NewReader(doc.Text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var b strings.Builder
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reading csv: %w", err)
		}
		cells := make([]string, 0, len(rec))
		for _, c := range rec {
			if c = strings.TrimSpace(c); c != "" {
				cells = append(cells, c)
			}
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteByte('\n')
	}
	return b.String(), nil
}
