package main

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"aisqlkit/internal/aisql"
)

// StartRefreshScheduler starts a cron-based scheduler that periodically
// re-runs every demo so derived tables pick up rows inserted since the
// last run. The schedule is a standard 5-field cron expression
// (minute hour day-of-month month day-of-week).
// Examples: "0 6 * * *" (daily 6am), "*/30 * * * *" (every 30 minutes).
func StartRefreshScheduler(cfg Config, db *sql.DB, client *aisql.Client, notifier *Notifier) {
	schedule := strings.TrimSpace(cfg.RefreshSchedule)
	if schedule == "" {
		log.Println("Scheduled refresh disabled (refresh_schedule not set)")
		return
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		log.Printf("Invalid refresh_schedule '%s': %v — scheduled refresh disabled", schedule, err)
		return
	}

	log.Printf("Refresh scheduled (cron: %s)", schedule)

	go func() {
		for {
			now := time.Now()
			next := sched.Next(now)
			wait := next.Sub(now)
			log.Printf("Next refresh at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

			time.Sleep(wait)

			results := RunAll(context.Background(), cfg, db, client)
			summary := FormatRunAllSummary(results)
			log.Printf("Refresh complete:\n%s", summary)

			notifier.PostSummary("Scheduled refresh complete", summary)
			notifier.PostFilteredAlert(results)
		}
	}()
}
