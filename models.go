package main

import "time"

type SupportTicket struct {
	ID         int64
	Customer   string
	Subject    string
	Body       string
	Language   string // ISO code of the body, "en" unless stated
	ReceivedAt time.Time
}

type ProductReview struct {
	ID       int64
	Product  string
	Reviewer string
	Body     string
	Rating   int // 1-5 stars
	PostedAt time.Time
}

type Document struct {
	ID      int64
	Title   string
	Path    string
	Kind    string // "invoice", "report", "manual", ...
	AddedAt time.Time
}

type CallRecording struct {
	ID           int64
	Agent        string
	Path         string
	DurationSecs int
	RecordedAt   time.Time
}

// SentimentRow is one aspect score persisted to ticket_sentiment.
type SentimentRow struct {
	TicketID      int64
	Aspect        string
	Sentiment     string
	Status        string
	RequestID     string
	SchemaVersion int
}

// AnswerRow is one extracted field persisted to ticket_answers.
type AnswerRow struct {
	TicketID      int64
	Field         string
	Answer        string
	Status        string
	RequestID     string
	SchemaVersion int
}

// TokenUsageRow is one accounting entry in token_usage.
type TokenUsageRow struct {
	Function     string
	Model        string
	InputTokens  int64
	OutputTokens int64
	RecordedAt   time.Time
}
