package main

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"aisqlkit/internal/aisql"
)

// runTranslateDemo translates ticket bodies into the configured target
// language. Tickets already in the target language get a Success row with
// the body passed through, so the derived table is complete for joins.
func runTranslateDemo(ctx context.Context, cfg Config, db *sql.DB, client *aisql.Client) (DemoResult, error) {
	var result DemoResult

	tickets, err := TicketsMissingFrom(db, "ticket_translations")
	if err != nil {
		return result, err
	}

	target := cfg.TargetLang
	for _, ticket := range tickets {
		if strings.EqualFold(ticket.Language, target) {
			result.count(aisql.StatusSuccess)
			if err := InsertTranslation(db, ticket.ID, ticket.Language, target, ticket.Body, aisql.StatusSuccess.String(), ""); err != nil {
				return result, err
			}
			continue
		}

		res, usage := client.Translate(ctx, ticket.Body, ticket.Language, target, aisql.Options{})
		recordUsage(db, aisql.FuncTranslate, client.Defaults().Model, usage)
		result.count(res.Status())

		translated, _ := res.Value()
		if err := InsertTranslation(db, ticket.ID, ticket.Language, target, translated, res.Status().String(), res.RequestID()); err != nil {
			return result, err
		}
		if res.Err() != nil {
			log.Printf("translate ticket=%d request=%s error: %v", ticket.ID, res.RequestID(), res.Err())
			result.Errors = append(result.Errors, res.Err().Error())
		}
	}
	return result, nil
}
