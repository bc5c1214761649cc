package aisql

import (
	"context"
	"log"
	"path/filepath"
)

const TranscribeSchemaVersion = 1

// TranscribeFile transcribes an audio or video file. An empty model uses
// the client's transcription default.
func (c *Client) TranscribeFile(ctx context.Context, model, path string) (Result[Transcript], Usage) {
	requestID := newRequestID()
	if model == "" {
		model = c.defaults.TranscribeModel
	}

	t, err := c.transcriber.Transcribe(ctx, model, path)
	if err != nil {
		return failure[Transcript](requestID, &ServiceError{Function: FuncTranscribe, Err: err}), Usage{}
	}

	log.Printf("aisql transcribe request=%s model=%s file=%s segments=%d status=Success",
		requestID, model, filepath.Base(path), len(t.Timestamps))
	return success(requestID, t), Usage{}
}
