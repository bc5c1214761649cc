package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"aisqlkit/internal/aisql"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: aisqlkit <command> [args]

Commands:
  setup            create the database and load sample data
  list             list available demos
  demo <name>      run one demo (%s)
  run-all          run every demo in order
  serve            run every demo, then keep refreshing on the configured schedule
`, strings.Join(DemoNames(), ", "))
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	command := os.Args[1]

	if command == "list" {
		for _, name := range DemoNames() {
			fmt.Println(name)
		}
		return
	}

	cfg := LoadConfig()

	db, err := InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}
	defer db.Close()

	switch command {
	case "setup":
		seeded, err := SeedSampleData(db, cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to seed sample data: %v", err)
		}
		log.Printf("Setup complete: %d tickets, %d reviews, %d documents, %d recordings",
			seeded.Tickets, seeded.Reviews, seeded.Documents, seeded.Recordings)

	case "demo":
		if len(os.Args) < 3 {
			usage()
		}
		client := buildClient(cfg)
		result, err := RunDemo(context.Background(), os.Args[2], cfg, db, client)
		if err != nil {
			log.Fatalf("Demo error: %v", err)
		}
		fmt.Println(FormatDemoSummary(result))

	case "run-all":
		client := buildClient(cfg)
		results := RunAll(context.Background(), cfg, db, client)
		fmt.Println(FormatRunAllSummary(results))

	case "serve":
		client := buildClient(cfg)
		notifier := NewNotifier(cfg)

		results := RunAll(context.Background(), cfg, db, client)
		summary := FormatRunAllSummary(results)
		log.Printf("Initial run complete:\n%s", summary)
		notifier.PostSummary("Initial run complete", summary)
		notifier.PostFilteredAlert(results)

		StartRefreshScheduler(cfg, db, client, notifier)
		log.Println("Serving; waiting for scheduled refreshes...")
		select {}

	default:
		usage()
	}
}

func buildClient(cfg Config) *aisql.Client {
	completer := aisql.NewAnthropicCompleter(cfg.AnthropicAPIKey)
	provider := aisql.NewOpenAIProvider(cfg.OpenAIAPIKey)
	return aisql.NewClient(completer, provider, provider, aisql.Defaults{
		Model:           cfg.Model,
		EmbedModel:      cfg.EmbedModel,
		TranscribeModel: cfg.TranscribeModel,
		Temperature:     cfg.Temperature,
		MaxTokens:       int64(cfg.MaxTokens),
	})
}
