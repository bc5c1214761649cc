package aisql

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const ParseSchemaVersion = 1

// Parse modes. OCR extracts plain text; LAYOUT preserves document
// structure as markdown.
const (
	ModeOCR    = "OCR"
	ModeLayout = "LAYOUT"
)

// ParseOptions control document parsing. Mode defaults to OCR. PageSplit
// additionally returns per-page content.
type ParseOptions struct {
	Mode      string
	PageSplit bool
	Options
}

type DocumentPage struct {
	Index   int    `json:"index"`
	Content string `json:"content"`
}

type DocumentMetadata struct {
	PageCount int `json:"pageCount"`
}

// ParsedDocument is the parse-document result: full content, per-page
// content when page splitting was requested, and metadata.
type ParsedDocument struct {
	Content  string           `json:"content"`
	Pages    []DocumentPage   `json:"pages,omitempty"`
	Metadata DocumentMetadata `json:"metadata"`
}

// JSONString renders the result in its wire shape, suitable for storing
// in a derived table column.
func (d ParsedDocument) JSONString() (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encoding parsed document: %w", err)
	}
	return string(b), nil
}

const parseOCRSystemPrompt = `You extract the readable text of a document. Return the plain text content in reading order, with no commentary. Separate pages with a line containing only "--- PAGE ---".`

const parseLayoutSystemPrompt = `You extract the content of a document preserving its structure. Return markdown: headings, lists, and tables where the document has them, with no commentary. Separate pages with a line containing only "--- PAGE ---".`

const pageSeparator = "--- PAGE ---"

// ParseDocument reads a document file and extracts its content. Only
// text-representable formats are supported; scanned image formats need a
// provider with native document input.
func (c *Client) ParseDocument(ctx context.Context, path string, opts ParseOptions) (Result[ParsedDocument], Usage) {
	mode := opts.Mode
	if mode == "" {
		mode = ModeOCR
	}
	if mode != ModeOCR && mode != ModeLayout {
		return failure[ParsedDocument](newRequestID(), fmt.Errorf("invalid parse mode %q", mode)), Usage{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return failure[ParsedDocument](newRequestID(), fmt.Errorf("read document: %w", err)), Usage{}
	}

	system := parseOCRSystemPrompt
	if mode == ModeLayout {
		system = parseLayoutSystemPrompt
	}

	prompt := fmt.Sprintf("Document file %q:\n\n%s", filepath.Base(path), string(data))
	req := c.completeRequest(system, prompt, opts.Options)
	raw, usage := c.invokeText(ctx, FuncParse, req)
	log.Printf("aisql parse-document request=%s model=%s file=%s mode=%s page_split=%t status=%s",
		raw.RequestID(), req.Model, filepath.Base(path), mode, opts.PageSplit, raw.Status())

	if raw.Status() != StatusSuccess {
		return recast[ParsedDocument](raw), usage
	}

	content, _ := raw.Value()
	doc := splitParsedContent(content, opts.PageSplit)
	return success(raw.RequestID(), doc), usage
}

func splitParsedContent(content string, pageSplit bool) ParsedDocument {
	parts := strings.Split(content, pageSeparator)
	var pages []DocumentPage
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		pages = append(pages, DocumentPage{Index: len(pages), Content: p})
	}
	if len(pages) == 0 {
		pages = []DocumentPage{{Index: 0, Content: ""}}
	}

	var joined []string
	for _, p := range pages {
		joined = append(joined, p.Content)
	}

	doc := ParsedDocument{
		Content:  strings.Join(joined, "\n\n"),
		Metadata: DocumentMetadata{PageCount: len(pages)},
	}
	if pageSplit {
		doc.Pages = pages
	}
	return doc
}
