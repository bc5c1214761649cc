package main

import (
	"context"
	"database/sql"
	"log"
	"sort"

	"aisqlkit/internal/aisql"
)

func runSummarizeDemo(ctx context.Context, cfg Config, db *sql.DB, client *aisql.Client) (DemoResult, error) {
	var result DemoResult

	tickets, err := TicketsMissingFrom(db, "ticket_summaries")
	if err != nil {
		return result, err
	}

	for _, ticket := range tickets {
		res, usage := client.Summarize(ctx, ticket.Body, aisql.Options{})
		recordUsage(db, aisql.FuncSummarize, client.Defaults().Model, usage)
		result.count(res.Status())

		summary, _ := res.Value()
		if err := InsertSummary(db, ticket.ID, summary, res.Status().String(), res.RequestID()); err != nil {
			return result, err
		}
		if res.Err() != nil {
			log.Printf("summarize ticket=%d request=%s error: %v", ticket.ID, res.RequestID(), res.Err())
			result.Errors = append(result.Errors, res.Err().Error())
		}
	}
	return result, nil
}

// runDigestDemo builds one aggregate summary per product from all of its
// reviews, the grouped-rows counterpart of the per-row summarize demo.
func runDigestDemo(ctx context.Context, cfg Config, db *sql.DB, client *aisql.Client) (DemoResult, error) {
	var result DemoResult

	grouped, err := ProductsMissingDigest(db)
	if err != nil {
		return result, err
	}

	// Deterministic order for logs and tests.
	products := make([]string, 0, len(grouped))
	for product := range grouped {
		products = append(products, product)
	}
	sort.Strings(products)

	for _, product := range products {
		reviews := grouped[product]
		texts := make([]string, len(reviews))
		for i, r := range reviews {
			texts[i] = r.Body
		}

		res, usage := client.SummarizeAgg(ctx, texts, aisql.Options{})
		recordUsage(db, aisql.FuncSummarizeAgg, client.Defaults().Model, usage)
		result.count(res.Status())

		digest, _ := res.Value()
		if err := InsertDigest(db, product, len(reviews), digest, res.Status().String(), res.RequestID()); err != nil {
			return result, err
		}
		if res.Err() != nil {
			log.Printf("digest product=%s request=%s error: %v", product, res.RequestID(), res.Err())
			result.Errors = append(result.Errors, res.Err().Error())
		}
	}
	return result, nil
}
