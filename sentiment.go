package main

import (
	"context"
	"database/sql"
	"log"

	"aisqlkit/internal/aisql"
)

// defaultAspects are scored when no aspects file is configured.
var defaultAspects = []string{"product quality", "delivery", "support experience"}

// runSentimentDemo scores every unprocessed ticket per aspect and
// persists one ticket_sentiment row per aspect. A filtered or failed
// invocation persists a single row for the overall aspect carrying the
// status, so re-runs do not retry the ticket forever.
func runSentimentDemo(ctx context.Context, cfg Config, db *sql.DB, client *aisql.Client) (DemoResult, error) {
	var result DemoResult

	aspects := defaultAspects
	var overrides []AspectOverride
	if cfg.AspectsPath != "" {
		aspectCfg, err := LoadAspectConfig(cfg.AspectsPath)
		if err != nil {
			return result, err
		}
		if len(aspectCfg.Aspects) > 0 {
			aspects = aspectCfg.Aspects
		}
		overrides = aspectCfg.Overrides
	}

	tickets, err := TicketsMissingFrom(db, "ticket_sentiment")
	if err != nil {
		return result, err
	}

	for _, ticket := range tickets {
		res, usage := client.Sentiment(ctx, ticket.Body, aspects, aisql.Options{})
		recordUsage(db, aisql.FuncSentiment, client.Defaults().Model, usage)
		result.count(res.Status())

		rows := sentimentRowsFor(ticket, res, overrides)
		if _, err := InsertSentimentRows(db, rows); err != nil {
			return result, err
		}
		if res.Err() != nil {
			log.Printf("sentiment ticket=%d request=%s error: %v", ticket.ID, res.RequestID(), res.Err())
			result.Errors = append(result.Errors, res.Err().Error())
		}
	}
	return result, nil
}

func sentimentRowsFor(ticket SupportTicket, res aisql.Result[aisql.SentimentResult], overrides []AspectOverride) []SentimentRow {
	status := res.Status().String()

	value, ok := res.Value()
	if !ok {
		return []SentimentRow{{
			TicketID:      ticket.ID,
			Aspect:        "overall",
			Status:        status,
			RequestID:     res.RequestID(),
			SchemaVersion: aisql.SentimentSchemaVersion,
		}}
	}

	value = applyAspectOverrides(ticket.Body, value, overrides)

	rows := make([]SentimentRow, 0, len(value.Categories))
	for _, cat := range value.Categories {
		rows = append(rows, SentimentRow{
			TicketID:      ticket.ID,
			Aspect:        cat.Name,
			Sentiment:     cat.Sentiment,
			Status:        status,
			RequestID:     res.RequestID(),
			SchemaVersion: aisql.SentimentSchemaVersion,
		})
	}
	return rows
}
