package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS support_tickets (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		customer    TEXT NOT NULL,
		subject     TEXT NOT NULL,
		body        TEXT NOT NULL,
		language    TEXT NOT NULL DEFAULT 'en',
		received_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tickets_received_at ON support_tickets(received_at);

	CREATE TABLE IF NOT EXISTS product_reviews (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		product   TEXT NOT NULL,
		reviewer  TEXT NOT NULL,
		body      TEXT NOT NULL,
		rating    INTEGER NOT NULL,
		posted_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reviews_product ON product_reviews(product);

	CREATE TABLE IF NOT EXISTS documents (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		title    TEXT NOT NULL,
		path     TEXT NOT NULL,
		kind     TEXT NOT NULL DEFAULT '',
		added_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS call_recordings (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		agent         TEXT NOT NULL,
		path          TEXT NOT NULL,
		duration_secs INTEGER NOT NULL DEFAULT 0,
		recorded_at   DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ticket_sentiment (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		ticket_id      INTEGER NOT NULL,
		aspect         TEXT NOT NULL,
		sentiment      TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL,
		request_id     TEXT NOT NULL DEFAULT '',
		schema_version INTEGER NOT NULL,
		processed_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_sentiment_ticket ON ticket_sentiment(ticket_id);

	CREATE TABLE IF NOT EXISTS ticket_answers (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		ticket_id      INTEGER NOT NULL,
		field          TEXT NOT NULL,
		answer         TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL,
		request_id     TEXT NOT NULL DEFAULT '',
		schema_version INTEGER NOT NULL,
		processed_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_answers_ticket ON ticket_answers(ticket_id);

	CREATE TABLE IF NOT EXISTS review_embeddings (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		review_id      INTEGER NOT NULL,
		model          TEXT NOT NULL,
		dims           INTEGER NOT NULL DEFAULT 0,
		vector         TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL,
		request_id     TEXT NOT NULL DEFAULT '',
		schema_version INTEGER NOT NULL,
		processed_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_embeddings_review ON review_embeddings(review_id);

	CREATE TABLE IF NOT EXISTS review_similarity (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		review_id      INTEGER NOT NULL,
		probe          TEXT NOT NULL,
		score          REAL,
		status         TEXT NOT NULL,
		request_id     TEXT NOT NULL DEFAULT '',
		schema_version INTEGER NOT NULL,
		processed_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS ticket_translations (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		ticket_id      INTEGER NOT NULL,
		source_lang    TEXT NOT NULL,
		target_lang    TEXT NOT NULL,
		translated     TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL,
		request_id     TEXT NOT NULL DEFAULT '',
		schema_version INTEGER NOT NULL,
		processed_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS ticket_summaries (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		ticket_id      INTEGER NOT NULL,
		summary        TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL,
		request_id     TEXT NOT NULL DEFAULT '',
		schema_version INTEGER NOT NULL,
		processed_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS product_digests (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		product        TEXT NOT NULL,
		review_count   INTEGER NOT NULL,
		digest         TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL,
		request_id     TEXT NOT NULL DEFAULT '',
		schema_version INTEGER NOT NULL,
		processed_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS document_contents (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		document_id    INTEGER NOT NULL,
		mode           TEXT NOT NULL,
		content        TEXT NOT NULL DEFAULT '',
		metadata       TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL,
		request_id     TEXT NOT NULL DEFAULT '',
		schema_version INTEGER NOT NULL,
		processed_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS call_transcripts (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		recording_id   INTEGER NOT NULL,
		transcript     TEXT NOT NULL DEFAULT '',
		timestamps     TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL,
		request_id     TEXT NOT NULL DEFAULT '',
		schema_version INTEGER NOT NULL,
		processed_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS moderation_log (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		ticket_id    INTEGER NOT NULL,
		prompt       TEXT NOT NULL,
		model        TEXT NOT NULL DEFAULT '',
		output       TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL,
		request_id   TEXT NOT NULL DEFAULT '',
		processed_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS token_usage (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		function      TEXT NOT NULL,
		model         TEXT NOT NULL DEFAULT '',
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		recorded_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err = db.Exec(schema)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func InsertTicket(db *sql.DB, t SupportTicket) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO support_tickets (customer, subject, body, language, received_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.Customer, t.Subject, t.Body, t.Language, t.ReceivedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func InsertReview(db *sql.DB, r ProductReview) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO product_reviews (product, reviewer, body, rating, posted_at)
		 VALUES (?, ?, ?, ?, ?)`,
		r.Product, r.Reviewer, r.Body, r.Rating, r.PostedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func InsertDocument(db *sql.DB, d Document) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO documents (title, path, kind, added_at) VALUES (?, ?, ?, ?)`,
		d.Title, d.Path, d.Kind, d.AddedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func InsertRecording(db *sql.DB, r CallRecording) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO call_recordings (agent, path, duration_secs, recorded_at) VALUES (?, ?, ?, ?)`,
		r.Agent, r.Path, r.DurationSecs, r.RecordedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ticketDerivedTables are the derived tables keyed by support ticket id.
// Table names are compile-time constants; they are interpolated because
// SQLite cannot parameterize identifiers.
var ticketDerivedTables = map[string]bool{
	"ticket_sentiment":    true,
	"ticket_answers":      true,
	"ticket_translations": true,
	"ticket_summaries":    true,
	"moderation_log":      true,
}

// TicketsMissingFrom returns tickets that have no row yet in the given
// derived table, oldest first. Re-running a demo therefore only touches
// new rows.
func TicketsMissingFrom(db *sql.DB, derivedTable string) ([]SupportTicket, error) {
	if !ticketDerivedTables[derivedTable] {
		return nil, fmt.Errorf("unknown derived table %q", derivedTable)
	}
	query := fmt.Sprintf(
		`SELECT t.id, t.customer, t.subject, t.body, t.language, t.received_at
		 FROM support_tickets t
		 LEFT JOIN %s d ON d.ticket_id = t.id
		 WHERE d.id IS NULL
		 ORDER BY t.received_at, t.id`, derivedTable)

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []SupportTicket
	for rows.Next() {
		var t SupportTicket
		if err := rows.Scan(&t.ID, &t.Customer, &t.Subject, &t.Body, &t.Language, &t.ReceivedAt); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func ReviewsMissingEmbeddings(db *sql.DB) ([]ProductReview, error) {
	return queryReviews(db,
		`SELECT r.id, r.product, r.reviewer, r.body, r.rating, r.posted_at
		 FROM product_reviews r
		 LEFT JOIN review_embeddings e ON e.review_id = r.id
		 WHERE e.id IS NULL
		 ORDER BY r.posted_at, r.id`)
}

func ReviewsMissingSimilarity(db *sql.DB) ([]ProductReview, error) {
	return queryReviews(db,
		`SELECT r.id, r.product, r.reviewer, r.body, r.rating, r.posted_at
		 FROM product_reviews r
		 LEFT JOIN review_similarity s ON s.review_id = r.id
		 WHERE s.id IS NULL
		 ORDER BY r.posted_at, r.id`)
}

func queryReviews(db *sql.DB, query string, args ...any) ([]ProductReview, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []ProductReview
	for rows.Next() {
		var r ProductReview
		if err := rows.Scan(&r.ID, &r.Product, &r.Reviewer, &r.Body, &r.Rating, &r.PostedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// ProductsMissingDigest returns products with at least one review and no
// digest row yet, with their reviews.
func ProductsMissingDigest(db *sql.DB) (map[string][]ProductReview, error) {
	reviews, err := queryReviews(db,
		`SELECT r.id, r.product, r.reviewer, r.body, r.rating, r.posted_at
		 FROM product_reviews r
		 WHERE r.product NOT IN (SELECT product FROM product_digests)
		 ORDER BY r.product, r.posted_at, r.id`)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]ProductReview)
	for _, r := range reviews {
		grouped[r.Product] = append(grouped[r.Product], r)
	}
	return grouped, nil
}

func DocumentsMissingContent(db *sql.DB) ([]Document, error) {
	rows, err := db.Query(
		`SELECT d.id, d.title, d.path, d.kind, d.added_at
		 FROM documents d
		 LEFT JOIN document_contents c ON c.document_id = d.id
		 WHERE c.id IS NULL
		 ORDER BY d.added_at, d.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Title, &d.Path, &d.Kind, &d.AddedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func RecordingsMissingTranscript(db *sql.DB) ([]CallRecording, error) {
	rows, err := db.Query(
		`SELECT r.id, r.agent, r.path, r.duration_secs, r.recorded_at
		 FROM call_recordings r
		 LEFT JOIN call_transcripts t ON t.recording_id = r.id
		 WHERE t.id IS NULL
		 ORDER BY r.recorded_at, r.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []CallRecording
	for rows.Next() {
		var r CallRecording
		if err := rows.Scan(&r.ID, &r.Agent, &r.Path, &r.DurationSecs, &r.RecordedAt); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

func InsertSentimentRows(db *sql.DB, rows []SentimentRow) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO ticket_sentiment (ticket_id, aspect, sentiment, status, request_id, schema_version)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, row := range rows {
		if _, err := stmt.Exec(row.TicketID, row.Aspect, row.Sentiment, row.Status, row.RequestID, row.SchemaVersion); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, tx.Commit()
}

func InsertAnswerRows(db *sql.DB, rows []AnswerRow) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO ticket_answers (ticket_id, field, answer, status, request_id, schema_version)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, row := range rows {
		if _, err := stmt.Exec(row.TicketID, row.Field, row.Answer, row.Status, row.RequestID, row.SchemaVersion); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, tx.Commit()
}

func InsertEmbedding(db *sql.DB, reviewID int64, model string, dims int, vector, status, requestID string) error {
	_, err := db.Exec(
		`INSERT INTO review_embeddings (review_id, model, dims, vector, status, request_id, schema_version)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		reviewID, model, dims, vector, status, requestID, 1,
	)
	return err
}

func InsertSimilarity(db *sql.DB, reviewID int64, probe string, score sql.NullFloat64, status, requestID string) error {
	_, err := db.Exec(
		`INSERT INTO review_similarity (review_id, probe, score, status, request_id, schema_version)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		reviewID, probe, score, status, requestID, 1,
	)
	return err
}

func InsertTranslation(db *sql.DB, ticketID int64, sourceLang, targetLang, translated, status, requestID string) error {
	_, err := db.Exec(
		`INSERT INTO ticket_translations (ticket_id, source_lang, target_lang, translated, status, request_id, schema_version)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ticketID, sourceLang, targetLang, translated, status, requestID, 1,
	)
	return err
}

func InsertSummary(db *sql.DB, ticketID int64, summary, status, requestID string) error {
	_, err := db.Exec(
		`INSERT INTO ticket_summaries (ticket_id, summary, status, request_id, schema_version)
		 VALUES (?, ?, ?, ?, ?)`,
		ticketID, summary, status, requestID, 1,
	)
	return err
}

func InsertDigest(db *sql.DB, product string, reviewCount int, digest, status, requestID string) error {
	_, err := db.Exec(
		`INSERT INTO product_digests (product, review_count, digest, status, request_id, schema_version)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		product, reviewCount, digest, status, requestID, 1,
	)
	return err
}

func InsertDocumentContent(db *sql.DB, documentID int64, mode, content, metadata, status, requestID string) error {
	_, err := db.Exec(
		`INSERT INTO document_contents (document_id, mode, content, metadata, status, request_id, schema_version)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		documentID, mode, content, metadata, status, requestID, 1,
	)
	return err
}

func InsertTranscriptRow(db *sql.DB, recordingID int64, transcript, timestamps, status, requestID string) error {
	_, err := db.Exec(
		`INSERT INTO call_transcripts (recording_id, transcript, timestamps, status, request_id, schema_version)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		recordingID, transcript, timestamps, status, requestID, 1,
	)
	return err
}

func InsertModeration(db *sql.DB, ticketID int64, prompt, model, output, status, requestID string) error {
	_, err := db.Exec(
		`INSERT INTO moderation_log (ticket_id, prompt, model, output, status, request_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ticketID, prompt, model, output, status, requestID,
	)
	return err
}

func RecordTokenUsage(db *sql.DB, row TokenUsageRow) error {
	recordedAt := row.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}
	_, err := db.Exec(
		`INSERT INTO token_usage (function, model, input_tokens, output_tokens, recorded_at)
		 VALUES (?, ?, ?, ?, ?)`,
		row.Function, row.Model, row.InputTokens, row.OutputTokens, recordedAt,
	)
	return err
}

// CountRows reports the row count of one of our own tables.
func CountRows(db *sql.DB, table string) (int, error) {
	var n int
	err := db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&n)
	return n, err
}
