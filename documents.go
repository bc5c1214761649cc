package main

import (
	"context"
	"database/sql"
	"log"

	"aisqlkit/internal/aisql"
)

// runParseDemo extracts document contents in layout mode with page
// splitting, storing the parsed JSON alongside the plain content column.
func runParseDemo(ctx context.Context, cfg Config, db *sql.DB, client *aisql.Client) (DemoResult, error) {
	var result DemoResult

	docs, err := DocumentsMissingContent(db)
	if err != nil {
		return result, err
	}

	for _, doc := range docs {
		opts := aisql.ParseOptions{Mode: aisql.ModeLayout, PageSplit: true}
		res, usage := client.ParseDocument(ctx, doc.Path, opts)
		recordUsage(db, aisql.FuncParse, client.Defaults().Model, usage)
		result.count(res.Status())

		var content, metadata string
		if parsed, ok := res.Value(); ok {
			content = parsed.Content
			encoded, err := parsed.JSONString()
			if err != nil {
				return result, err
			}
			metadata = encoded
		}

		if err := InsertDocumentContent(db, doc.ID, opts.Mode, content, metadata, res.Status().String(), res.RequestID()); err != nil {
			return result, err
		}
		if res.Err() != nil {
			log.Printf("parse document=%d path=%s request=%s error: %v", doc.ID, doc.Path, res.RequestID(), res.Err())
			result.Errors = append(result.Errors, res.Err().Error())
		}
	}
	return result, nil
}
