package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sort"
	"strings"

	"aisqlkit/internal/aisql"
)

// DemoResult tracks separate counters for each row outcome.
type DemoResult struct {
	Demo      string
	Processed int
	Succeeded int
	Filtered  int
	Failed    int
	Errors    []string
}

func (r *DemoResult) count(status aisql.Status) {
	r.Processed++
	switch status {
	case aisql.StatusSuccess:
		r.Succeeded++
	case aisql.StatusFiltered:
		r.Filtered++
	default:
		r.Failed++
	}
}

type demoFunc func(ctx context.Context, cfg Config, db *sql.DB, client *aisql.Client) (DemoResult, error)

// demoOrder is the order run-all executes in; embed before similarity so
// both read the same review set.
var demoOrder = []string{
	"sentiment",
	"extract",
	"embed",
	"similarity",
	"translate",
	"summarize",
	"digest",
	"parse",
	"transcribe",
	"moderate",
	"tokens",
}

var demos = map[string]demoFunc{
	"sentiment":  runSentimentDemo,
	"extract":    runExtractDemo,
	"embed":      runEmbedDemo,
	"similarity": runSimilarityDemo,
	"translate":  runTranslateDemo,
	"summarize":  runSummarizeDemo,
	"digest":     runDigestDemo,
	"parse":      runParseDemo,
	"transcribe": runTranscribeDemo,
	"moderate":   runModerateDemo,
	"tokens":     runTokensDemo,
}

func DemoNames() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func RunDemo(ctx context.Context, name string, cfg Config, db *sql.DB, client *aisql.Client) (DemoResult, error) {
	fn, ok := demos[name]
	if !ok {
		return DemoResult{}, fmt.Errorf("unknown demo %q (available: %s)", name, strings.Join(DemoNames(), ", "))
	}
	log.Printf("demo start name=%s", name)
	result, err := fn(ctx, cfg, db, client)
	result.Demo = name
	if err != nil {
		log.Printf("demo error name=%s err=%v", name, err)
		return result, err
	}
	log.Printf("demo done name=%s processed=%d succeeded=%d filtered=%d failed=%d",
		name, result.Processed, result.Succeeded, result.Filtered, result.Failed)
	return result, nil
}

// RunAll runs every demo in order. A demo-level failure is recorded and
// the remaining demos still run.
func RunAll(ctx context.Context, cfg Config, db *sql.DB, client *aisql.Client) []DemoResult {
	var results []DemoResult
	for _, name := range demoOrder {
		result, err := RunDemo(ctx, name, cfg, db, client)
		if err != nil {
			result.Demo = name
			result.Errors = append(result.Errors, err.Error())
		}
		results = append(results, result)
	}
	return results
}

// FormatDemoSummary returns a human-readable summary of one demo run.
func FormatDemoSummary(r DemoResult) string {
	if len(r.Errors) > 0 && r.Processed == 0 {
		return fmt.Sprintf("%s: error: %s", r.Demo, strings.Join(r.Errors, "; "))
	}
	if r.Processed == 0 {
		return fmt.Sprintf("%s: nothing to process", r.Demo)
	}

	parts := []string{fmt.Sprintf("%d succeeded", r.Succeeded)}
	if r.Filtered > 0 {
		parts = append(parts, fmt.Sprintf("%d filtered", r.Filtered))
	}
	if r.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", r.Failed))
	}
	msg := fmt.Sprintf("%s: processed %d rows: %s", r.Demo, r.Processed, strings.Join(parts, ", "))
	if len(r.Errors) > 0 {
		msg += fmt.Sprintf("\nWarnings:\n%s", strings.Join(r.Errors, "\n"))
	}
	return msg
}

func FormatRunAllSummary(results []DemoResult) string {
	var lines []string
	for _, r := range results {
		lines = append(lines, FormatDemoSummary(r))
	}
	return strings.Join(lines, "\n")
}

// recordUsage books the tokens one invocation spent. Accounting failures
// are logged, never fatal to the demo.
func recordUsage(db *sql.DB, function, model string, usage aisql.Usage) {
	if usage.TotalTokens() == 0 {
		return
	}
	err := RecordTokenUsage(db, TokenUsageRow{
		Function:     function,
		Model:        model,
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
	})
	if err != nil {
		log.Printf("token usage insert error function=%s: %v", function, err)
	}
}
