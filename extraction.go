package main

import (
	"context"
	"database/sql"
	"log"

	"aisqlkit/internal/aisql"
)

// ticketQuestions are the fields the extract demo pulls out of each
// ticket body.
var ticketQuestions = []aisql.Question{
	{Field: "order_ref", Prompt: "Which order or invoice number does the customer mention, if any?"},
	{Field: "request", Prompt: "What concrete action does the customer want taken?"},
	{Field: "product_area", Prompt: "Which product area is affected (billing, delivery, app, account, other)?"},
}

func runExtractDemo(ctx context.Context, cfg Config, db *sql.DB, client *aisql.Client) (DemoResult, error) {
	var result DemoResult

	tickets, err := TicketsMissingFrom(db, "ticket_answers")
	if err != nil {
		return result, err
	}

	for _, ticket := range tickets {
		res, usage := client.ExtractAnswer(ctx, ticket.Body, ticketQuestions, aisql.Options{})
		recordUsage(db, aisql.FuncExtract, client.Defaults().Model, usage)
		result.count(res.Status())

		rows := answerRowsFor(ticket, res)
		if _, err := InsertAnswerRows(db, rows); err != nil {
			return result, err
		}
		if res.Err() != nil {
			log.Printf("extract ticket=%d request=%s error: %v", ticket.ID, res.RequestID(), res.Err())
			result.Errors = append(result.Errors, res.Err().Error())
		}
	}
	return result, nil
}

func answerRowsFor(ticket SupportTicket, res aisql.Result[aisql.ExtractResult]) []AnswerRow {
	status := res.Status().String()

	value, ok := res.Value()
	if !ok {
		return []AnswerRow{{
			TicketID:      ticket.ID,
			Field:         "_",
			Status:        status,
			RequestID:     res.RequestID(),
			SchemaVersion: aisql.ExtractSchemaVersion,
		}}
	}

	// Contract-level "cannot answer": keep the reason in a single row so
	// the ticket shows up in the derived table with context.
	if value.Failure != nil {
		return []AnswerRow{{
			TicketID:      ticket.ID,
			Field:         "error",
			Answer:        value.Failure.Message,
			Status:        status,
			RequestID:     res.RequestID(),
			SchemaVersion: aisql.ExtractSchemaVersion,
		}}
	}

	rows := make([]AnswerRow, 0, len(ticketQuestions))
	for _, q := range ticketQuestions {
		rows = append(rows, AnswerRow{
			TicketID:      ticket.ID,
			Field:         q.Field,
			Answer:        value.Fields[q.Field],
			Status:        status,
			RequestID:     res.RequestID(),
			SchemaVersion: aisql.ExtractSchemaVersion,
		})
	}
	return rows
}
