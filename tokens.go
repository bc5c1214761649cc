package main

import (
	"context"
	"database/sql"
	"log"

	"aisqlkit/internal/aisql"
)

// tokenCountFunctions are the chat-backed functions worth budgeting for.
// Embedding and transcription bill differently and report usage on the
// call itself.
var tokenCountFunctions = []string{
	aisql.FuncSentiment,
	aisql.FuncExtract,
	aisql.FuncTranslate,
	aisql.FuncSummarize,
	aisql.FuncSummarizeAgg,
	aisql.FuncComplete,
}

// runTokensDemo prices out each chat-backed function against the oldest
// ticket so the cost of a full run can be estimated before spending it.
func runTokensDemo(ctx context.Context, cfg Config, db *sql.DB, client *aisql.Client) (DemoResult, error) {
	var result DemoResult

	var body string
	err := db.QueryRow(`SELECT body FROM support_tickets ORDER BY received_at, id LIMIT 1`).Scan(&body)
	if err == sql.ErrNoRows {
		return result, nil
	}
	if err != nil {
		return result, err
	}

	model := client.Defaults().Model
	for _, function := range tokenCountFunctions {
		n, err := client.CountTokens(ctx, function, model, body)
		if err != nil {
			result.Failed++
			result.Processed++
			log.Printf("count-tokens function=%s error: %v", function, err)
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Succeeded++
		result.Processed++
		if err := RecordTokenUsage(db, TokenUsageRow{Function: function, Model: model, InputTokens: n}); err != nil {
			return result, err
		}
	}
	return result, nil
}
