package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"aisqlkit/internal/aisql"
)

// Moderation verdicts recorded in moderation_log. A filtered completion
// means the guard suppressed the draft, not that the call failed.
const (
	verdictApproved = "Approved"
	verdictFiltered = "Filtered"
	verdictFailed   = "Failed"
)

// runModerateDemo drafts a reply to each new ticket with the safety guard
// enabled and records whether the guard let the draft through.
func runModerateDemo(ctx context.Context, cfg Config, db *sql.DB, client *aisql.Client) (DemoResult, error) {
	var result DemoResult

	tickets, err := TicketsMissingFrom(db, "moderation_log")
	if err != nil {
		return result, err
	}

	for _, ticket := range tickets {
		prompt := fmt.Sprintf("Draft a short, professional reply to this support ticket.\n\nSubject: %s\n\n%s", ticket.Subject, ticket.Body)
		res, usage := client.Complete(ctx, prompt, aisql.Options{GuardEnable: true})
		recordUsage(db, aisql.FuncComplete, client.Defaults().Model, usage)
		result.count(res.Status())

		output, _ := res.Value()
		verdict := verdictForStatus(res.Status())
		if err := InsertModeration(db, ticket.ID, prompt, client.Defaults().Model, output, verdict, res.RequestID()); err != nil {
			return result, err
		}
		if res.Err() != nil {
			log.Printf("moderate ticket=%d request=%s error: %v", ticket.ID, res.RequestID(), res.Err())
			result.Errors = append(result.Errors, res.Err().Error())
		}
	}
	return result, nil
}

func verdictForStatus(s aisql.Status) string {
	switch s {
	case aisql.StatusSuccess:
		return verdictApproved
	case aisql.StatusFiltered:
		return verdictFiltered
	default:
		return verdictFailed
	}
}
