package main

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "aisqlkit-test.db")
	db, err := InitDB(dbPath)
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSeedSampleDataIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	dataDir := t.TempDir()

	first, err := SeedSampleData(db, dataDir)
	if err != nil {
		t.Fatalf("SeedSampleData failed: %v", err)
	}
	if first.Skipped {
		t.Fatal("first seed should not be skipped")
	}
	if first.Tickets == 0 || first.Reviews == 0 || first.Documents == 0 || first.Recordings == 0 {
		t.Fatalf("expected all sample tables populated, got %+v", first)
	}

	second, err := SeedSampleData(db, dataDir)
	if err != nil {
		t.Fatalf("second SeedSampleData failed: %v", err)
	}
	if !second.Skipped {
		t.Fatal("second seed should be skipped")
	}

	count, err := CountRows(db, "support_tickets")
	if err != nil {
		t.Fatalf("CountRows failed: %v", err)
	}
	if count != first.Tickets {
		t.Fatalf("expected %d tickets after re-seed, got %d", first.Tickets, count)
	}
}

func TestTicketsMissingFrom(t *testing.T) {
	db := newTestDB(t)
	base := time.Now().UTC().Truncate(time.Second)

	id1, err := InsertTicket(db, SupportTicket{Customer: "A", Subject: "first", Body: "b", Language: "en", ReceivedAt: base})
	if err != nil {
		t.Fatalf("InsertTicket failed: %v", err)
	}
	id2, err := InsertTicket(db, SupportTicket{Customer: "B", Subject: "second", Body: "b", Language: "en", ReceivedAt: base.Add(time.Minute)})
	if err != nil {
		t.Fatalf("InsertTicket failed: %v", err)
	}

	missing, err := TicketsMissingFrom(db, "ticket_sentiment")
	if err != nil {
		t.Fatalf("TicketsMissingFrom failed: %v", err)
	}
	if len(missing) != 2 {
		t.Fatalf("expected 2 missing tickets, got %d", len(missing))
	}
	if missing[0].ID != id1 {
		t.Fatalf("expected oldest ticket first, got id=%d", missing[0].ID)
	}

	if _, err := InsertSentimentRows(db, []SentimentRow{
		{TicketID: id1, Aspect: "overall", Sentiment: "positive", Status: "Success", RequestID: "r1", SchemaVersion: 2},
	}); err != nil {
		t.Fatalf("InsertSentimentRows failed: %v", err)
	}

	missing, err = TicketsMissingFrom(db, "ticket_sentiment")
	if err != nil {
		t.Fatalf("TicketsMissingFrom after insert failed: %v", err)
	}
	if len(missing) != 1 || missing[0].ID != id2 {
		t.Fatalf("expected only second ticket missing, got %+v", missing)
	}

	// A failed row still counts as processed, so reruns skip it.
	if _, err := InsertSentimentRows(db, []SentimentRow{
		{TicketID: id2, Aspect: "overall", Status: "Error", RequestID: "r2", SchemaVersion: 2},
	}); err != nil {
		t.Fatalf("InsertSentimentRows failed: %v", err)
	}
	missing, err = TicketsMissingFrom(db, "ticket_sentiment")
	if err != nil {
		t.Fatalf("TicketsMissingFrom after error row failed: %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("expected no missing tickets, got %d", len(missing))
	}

	if _, err := TicketsMissingFrom(db, "support_tickets"); err == nil {
		t.Fatal("expected error for non-derived table")
	}
}

func TestReviewQueriesAndDigestGrouping(t *testing.T) {
	db := newTestDB(t)
	base := time.Now().UTC().Truncate(time.Second)

	lampID, err := InsertReview(db, ProductReview{Product: "Lamp", Reviewer: "R1", Body: "bright", Rating: 5, PostedAt: base})
	if err != nil {
		t.Fatalf("InsertReview failed: %v", err)
	}
	if _, err := InsertReview(db, ProductReview{Product: "Lamp", Reviewer: "R2", Body: "dim", Rating: 2, PostedAt: base.Add(time.Minute)}); err != nil {
		t.Fatalf("InsertReview failed: %v", err)
	}
	if _, err := InsertReview(db, ProductReview{Product: "Mug", Reviewer: "R3", Body: "sturdy", Rating: 4, PostedAt: base.Add(2 * time.Minute)}); err != nil {
		t.Fatalf("InsertReview failed: %v", err)
	}

	missing, err := ReviewsMissingEmbeddings(db)
	if err != nil {
		t.Fatalf("ReviewsMissingEmbeddings failed: %v", err)
	}
	if len(missing) != 3 {
		t.Fatalf("expected 3 reviews missing embeddings, got %d", len(missing))
	}

	if err := InsertEmbedding(db, lampID, "test-embed", 3, "[0.1,0.2,0.3]", "Success", "r1"); err != nil {
		t.Fatalf("InsertEmbedding failed: %v", err)
	}
	missing, err = ReviewsMissingEmbeddings(db)
	if err != nil {
		t.Fatalf("ReviewsMissingEmbeddings failed: %v", err)
	}
	if len(missing) != 2 {
		t.Fatalf("expected 2 reviews missing embeddings, got %d", len(missing))
	}

	if err := InsertSimilarity(db, lampID, "probe", sql.NullFloat64{Float64: 0.8, Valid: true}, "Success", "r2"); err != nil {
		t.Fatalf("InsertSimilarity failed: %v", err)
	}
	missingSim, err := ReviewsMissingSimilarity(db)
	if err != nil {
		t.Fatalf("ReviewsMissingSimilarity failed: %v", err)
	}
	if len(missingSim) != 2 {
		t.Fatalf("expected 2 reviews missing similarity, got %d", len(missingSim))
	}

	grouped, err := ProductsMissingDigest(db)
	if err != nil {
		t.Fatalf("ProductsMissingDigest failed: %v", err)
	}
	if len(grouped) != 2 {
		t.Fatalf("expected 2 products missing digest, got %d", len(grouped))
	}
	if len(grouped["Lamp"]) != 2 {
		t.Fatalf("expected 2 Lamp reviews, got %d", len(grouped["Lamp"]))
	}

	if err := InsertDigest(db, "Lamp", 2, "mixed feedback on brightness", "Success", "r3"); err != nil {
		t.Fatalf("InsertDigest failed: %v", err)
	}
	grouped, err = ProductsMissingDigest(db)
	if err != nil {
		t.Fatalf("ProductsMissingDigest failed: %v", err)
	}
	if len(grouped) != 1 || len(grouped["Mug"]) != 1 {
		t.Fatalf("expected only Mug missing digest, got %v", grouped)
	}
}

func TestDocumentAndRecordingQueries(t *testing.T) {
	db := newTestDB(t)
	base := time.Now().UTC().Truncate(time.Second)

	docID, err := InsertDocument(db, Document{Title: "Invoice", Path: "/tmp/invoice.txt", Kind: "invoice", AddedAt: base})
	if err != nil {
		t.Fatalf("InsertDocument failed: %v", err)
	}
	recID, err := InsertRecording(db, CallRecording{Agent: "Sam", Path: "/tmp/call.wav", DurationSecs: 90, RecordedAt: base})
	if err != nil {
		t.Fatalf("InsertRecording failed: %v", err)
	}

	docs, err := DocumentsMissingContent(db)
	if err != nil {
		t.Fatalf("DocumentsMissingContent failed: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != docID {
		t.Fatalf("unexpected missing documents: %+v", docs)
	}

	if err := InsertDocumentContent(db, docID, "LAYOUT", "content", `{"metadata":{"pageCount":1}}`, "Success", "r1"); err != nil {
		t.Fatalf("InsertDocumentContent failed: %v", err)
	}
	docs, err = DocumentsMissingContent(db)
	if err != nil {
		t.Fatalf("DocumentsMissingContent failed: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected no missing documents, got %d", len(docs))
	}

	recs, err := RecordingsMissingTranscript(db)
	if err != nil {
		t.Fatalf("RecordingsMissingTranscript failed: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != recID {
		t.Fatalf("unexpected missing recordings: %+v", recs)
	}

	if err := InsertTranscriptRow(db, recID, "hello", "", "Success", "r2"); err != nil {
		t.Fatalf("InsertTranscriptRow failed: %v", err)
	}
	recs, err = RecordingsMissingTranscript(db)
	if err != nil {
		t.Fatalf("RecordingsMissingTranscript failed: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected no missing recordings, got %d", len(recs))
	}
}

func TestAnswerRowsAndTokenUsage(t *testing.T) {
	db := newTestDB(t)
	base := time.Now().UTC().Truncate(time.Second)

	ticketID, err := InsertTicket(db, SupportTicket{Customer: "A", Subject: "s", Body: "b", Language: "en", ReceivedAt: base})
	if err != nil {
		t.Fatalf("InsertTicket failed: %v", err)
	}

	inserted, err := InsertAnswerRows(db, []AnswerRow{
		{TicketID: ticketID, Field: "order_ref", Answer: "A-1042", Status: "Success", RequestID: "r1", SchemaVersion: 1},
		{TicketID: ticketID, Field: "request", Answer: "replacement", Status: "Success", RequestID: "r1", SchemaVersion: 1},
	})
	if err != nil {
		t.Fatalf("InsertAnswerRows failed: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("expected 2 answer rows inserted, got %d", inserted)
	}

	missing, err := TicketsMissingFrom(db, "ticket_answers")
	if err != nil {
		t.Fatalf("TicketsMissingFrom failed: %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("expected no tickets missing answers, got %d", len(missing))
	}

	if err := RecordTokenUsage(db, TokenUsageRow{Function: "sentiment", Model: "test-model", InputTokens: 120, OutputTokens: 40}); err != nil {
		t.Fatalf("RecordTokenUsage failed: %v", err)
	}
	count, err := CountRows(db, "token_usage")
	if err != nil {
		t.Fatalf("CountRows failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 token usage row, got %d", count)
	}
}
