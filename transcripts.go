package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"

	"aisqlkit/internal/aisql"
)

// runTranscribeDemo turns call recordings into transcripts. Timestamped
// segments are stored as JSON next to the plain transcript text.
func runTranscribeDemo(ctx context.Context, cfg Config, db *sql.DB, client *aisql.Client) (DemoResult, error) {
	var result DemoResult

	recordings, err := RecordingsMissingTranscript(db)
	if err != nil {
		return result, err
	}

	for _, rec := range recordings {
		res, usage := client.TranscribeFile(ctx, cfg.TranscribeModel, rec.Path)
		recordUsage(db, aisql.FuncTranscribe, cfg.TranscribeModel, usage)
		result.count(res.Status())

		var text, timestamps string
		if transcript, ok := res.Value(); ok {
			text = transcript.Text
			if len(transcript.Timestamps) > 0 {
				encoded, err := json.Marshal(transcript.Timestamps)
				if err != nil {
					return result, err
				}
				timestamps = string(encoded)
			}
		}

		if err := InsertTranscriptRow(db, rec.ID, text, timestamps, res.Status().String(), res.RequestID()); err != nil {
			return result, err
		}
		if res.Err() != nil {
			log.Printf("transcribe recording=%d path=%s request=%s error: %v", rec.ID, rec.Path, res.RequestID(), res.Err())
			result.Errors = append(result.Errors, res.Err().Error())
		}
	}
	return result, nil
}
