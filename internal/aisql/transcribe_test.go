package aisql

import (
	"context"
	"errors"
	"testing"
)

func TestTranscribeFileSuccess(t *testing.T) {
	stub := &stubTranscriber{transcript: Transcript{
		Text:       "thanks for calling",
		Timestamps: []TimestampedSegment{{Start: 0, End: 2.1, Text: "thanks for calling"}},
	}}
	client := newTestClient(nil, nil, stub)

	result, _ := client.TranscribeFile(context.Background(), "", "/tmp/call.wav")

	if result.Status() != StatusSuccess {
		t.Fatalf("expected Success, got %s (err=%v)", result.Status(), result.Err())
	}
	v, _ := result.Value()
	if v.Text != "thanks for calling" {
		t.Fatalf("text = %q", v.Text)
	}
	if len(v.Timestamps) != 1 {
		t.Fatalf("timestamps = %+v", v.Timestamps)
	}
}

func TestTranscribeFileServiceError(t *testing.T) {
	boom := errors.New("unsupported codec")
	client := newTestClient(nil, nil, &stubTranscriber{err: boom})

	result, _ := client.TranscribeFile(context.Background(), "", "/tmp/call.wav")

	if result.Status() != StatusError {
		t.Fatalf("expected Error, got %s", result.Status())
	}
	if !errors.Is(result.Err(), boom) {
		t.Fatalf("expected original error preserved, got %v", result.Err())
	}
}
