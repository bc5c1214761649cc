package aisql

import "context"

// CompleteRequest is one chat-style call to a hosted model.
type CompleteRequest struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int64
	GuardEnable bool
}

// CompleteResponse carries the model output. Filtered is set when the
// provider's safety layer suppressed the output; Text is empty in that
// case. Providers that cannot tell filtering apart from an empty service
// response must document which way they classify it.
type CompleteResponse struct {
	Text     string
	Filtered bool
	Usage    Usage
}

// Completer runs chat-style completions and counts tokens for them.
type Completer interface {
	Complete(ctx context.Context, req CompleteRequest) (CompleteResponse, error)
	CountTokens(ctx context.Context, model, system, prompt string) (int64, error)
}

// Embedder turns texts into fixed-dimension vectors.
type Embedder interface {
	Embed(ctx context.Context, model string, inputs []string) ([][]float32, Usage, error)
}

// TimestampedSegment is one span of transcribed speech.
type TimestampedSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is the full transcription of an audio or video file.
type Transcript struct {
	Text       string               `json:"text"`
	Timestamps []TimestampedSegment `json:"timestamps"`
}

// Transcriber converts an audio file into a transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, model, path string) (Transcript, error)
}
