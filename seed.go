package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// SeedResult tracks what setup provisioned.
type SeedResult struct {
	Tickets    int
	Reviews    int
	Documents  int
	Recordings int
	Skipped    bool
}

// SeedSampleData provisions the sample tables and writes the sample
// document files under dataDir. It is idempotent: a warehouse that
// already holds tickets is left untouched.
func SeedSampleData(db *sql.DB, dataDir string) (SeedResult, error) {
	existing, err := CountRows(db, "support_tickets")
	if err != nil {
		return SeedResult{}, err
	}
	if existing > 0 {
		log.Printf("seed skipped: support_tickets already has %d rows", existing)
		return SeedResult{Skipped: true}, nil
	}

	base := time.Date(2026, time.August, 3, 9, 0, 0, 0, time.UTC)
	var result SeedResult

	for _, t := range sampleTickets(base) {
		if _, err := InsertTicket(db, t); err != nil {
			return result, fmt.Errorf("seed ticket: %w", err)
		}
		result.Tickets++
	}
	for _, r := range sampleReviews(base) {
		if _, err := InsertReview(db, r); err != nil {
			return result, fmt.Errorf("seed review: %w", err)
		}
		result.Reviews++
	}

	docs, err := writeSampleDocuments(dataDir, base)
	if err != nil {
		return result, err
	}
	for _, d := range docs {
		if _, err := InsertDocument(db, d); err != nil {
			return result, fmt.Errorf("seed document: %w", err)
		}
		result.Documents++
	}

	for _, r := range sampleRecordings(dataDir, base) {
		if _, err := InsertRecording(db, r); err != nil {
			return result, fmt.Errorf("seed recording: %w", err)
		}
		result.Recordings++
	}

	log.Printf("seed complete tickets=%d reviews=%d documents=%d recordings=%d",
		result.Tickets, result.Reviews, result.Documents, result.Recordings)
	return result, nil
}

func sampleTickets(base time.Time) []SupportTicket {
	return []SupportTicket{
		{
			Customer: "Dana Whitfield",
			Subject:  "Order A-1042 arrived damaged",
			Body: "Hi, my order A-1042 arrived yesterday but the box was crushed and the mug inside is chipped. " +
				"I'd like a replacement shipped this week if possible. The delivery itself was fast, no complaints there.",
			Language:   "en",
			ReceivedAt: base,
		},
		{
			Customer: "Marco Ruiz",
			Subject:  "Double charge on invoice 7731",
			Body: "I was charged twice for invoice 7731 on August 1st. Please refund the duplicate charge. " +
				"Your support chat kept disconnecting, which was very frustrating.",
			Language:   "en",
			ReceivedAt: base.Add(2 * time.Hour),
		},
		{
			Customer: "Sofía Herrera",
			Subject:  "Problema con la suscripción",
			Body: "Hola, mi suscripción se renovó automáticamente aunque la cancelé la semana pasada. " +
				"Necesito que cancelen el cargo y confirmen que la cuenta quedó cerrada.",
			Language:   "es",
			ReceivedAt: base.Add(26 * time.Hour),
		},
		{
			Customer: "Jonas Keller",
			Subject:  "Lieferung verspätet",
			Body: "Meine Bestellung B-2210 sollte letzte Woche ankommen, ist aber immer noch unterwegs. " +
				"Bitte teilen Sie mir den aktuellen Lieferstatus mit.",
			Language:   "de",
			ReceivedAt: base.Add(30 * time.Hour),
		},
		{
			Customer: "Priya Nair",
			Subject:  "Feature request: export to CSV",
			Body: "Love the dashboard so far. It would be great to export the usage table to CSV. " +
				"Right now I copy the numbers by hand every Monday, which takes about an hour.",
			Language:   "en",
			ReceivedAt: base.Add(50 * time.Hour),
		},
		{
			Customer: "Terry Boyd",
			Subject:  "App crashes on login",
			Body: "Since the 3.2 update the mobile app crashes immediately after login on my Pixel 8. " +
				"I already reinstalled and cleared the cache. Logs attached in the portal under case 9012.",
			Language:   "en",
			ReceivedAt: base.Add(54 * time.Hour),
		},
		{
			Customer: "anonymous",
			Subject:  "you will regret this",
			Body: "I know where your office is. Whoever cancelled my account should watch their back, " +
				"I will make them pay for this.",
			Language:   "en",
			ReceivedAt: base.Add(70 * time.Hour),
		},
		{
			Customer: "Lena Novak",
			Subject:  "Thanks for the quick fix",
			Body: "Just wanted to say your agent resolved my billing question in five minutes. " +
				"Best support experience I've had this year. Keep it up!",
			Language:   "en",
			ReceivedAt: base.Add(75 * time.Hour),
		},
	}
}

func sampleReviews(base time.Time) []ProductReview {
	return []ProductReview{
		{Product: "TrailLite Backpack", Reviewer: "hiker_jo", Rating: 5, PostedAt: base,
			Body: "Carried it across the Dolomites. Straps are comfortable, zippers feel solid, and it shrugged off two rainstorms."},
		{Product: "TrailLite Backpack", Reviewer: "weekend_walker", Rating: 2, PostedAt: base.Add(20 * time.Hour),
			Body: "The hip belt buckle cracked in the second week. Great layout, shame about the hardware."},
		{Product: "TrailLite Backpack", Reviewer: "m.santos", Rating: 4, PostedAt: base.Add(40 * time.Hour),
			Body: "Roomy and light. Delivery took longer than promised, but the pack itself is excellent value."},
		{Product: "AeroPress Go", Reviewer: "coffee_nerd", Rating: 5, PostedAt: base.Add(5 * time.Hour),
			Body: "Makes a clean cup in two minutes. I take it on every work trip now."},
		{Product: "AeroPress Go", Reviewer: "tea_person", Rating: 3, PostedAt: base.Add(28 * time.Hour),
			Body: "Works as advertised but the cup it nests in is too small to actually drink from."},
		{Product: "AeroPress Go", Reviewer: "b.liang", Rating: 4, PostedAt: base.Add(52 * time.Hour),
			Body: "Sturdy and easy to clean. Wish it came with a metal filter out of the box."},
		{Product: "NightOwl Desk Lamp", Reviewer: "late_reader", Rating: 1, PostedAt: base.Add(8 * time.Hour),
			Body: "Flickers at the lowest brightness and the touch control triggers by itself. Returning it."},
		{Product: "NightOwl Desk Lamp", Reviewer: "studio_kat", Rating: 4, PostedAt: base.Add(33 * time.Hour),
			Body: "Nice warm light and the arm holds position well. The base is a bit of a dust magnet."},
		{Product: "NightOwl Desk Lamp", Reviewer: "drafting_dan", Rating: 5, PostedAt: base.Add(60 * time.Hour),
			Body: "Bought two for the office. Even light across the whole desk, no glare on the monitor."},
	}
}

const sampleInvoiceDoc = `ACME SUPPLY CO.
INVOICE 7731

Bill to: Marco Ruiz
Date: 2026-08-01
Terms: Net 30

Item                Qty    Unit     Amount
Standing desk        1     489.00   489.00
Cable tray           2      19.50    39.00
Delivery                             25.00

Subtotal                            553.00
Tax (8%)                             44.24
TOTAL                               597.24
--- PAGE ---
Payment received 2026-08-01 via card ending 4412.
Payment received 2026-08-01 via card ending 4412 (duplicate).
Contact billing@acmesupply.example for corrections.
`

const sampleReportDoc = `# Q2 Support Operations Review

## Volume
Ticket volume rose 18% quarter over quarter, driven by the 3.2 mobile release.

## Response times
Median first response held at 42 minutes. The Friday backlog spike from Q1
did not recur after the rota change.

## Themes
Billing disputes and delivery delays remain the top two categories.
Crash reports spiked in the last two weeks of June.
`

func writeSampleDocuments(dataDir string, base time.Time) ([]Document, error) {
	docsDir := filepath.Join(dataDir, "docs")
	if err := os.MkdirAll(docsDir, 0755); err != nil {
		return nil, fmt.Errorf("create docs dir: %w", err)
	}

	files := []struct {
		name    string
		content string
		title   string
		kind    string
	}{
		{"invoice_7731.txt", sampleInvoiceDoc, "Invoice 7731", "invoice"},
		{"q2_support_review.md", sampleReportDoc, "Q2 Support Operations Review", "report"},
	}

	var docs []Document
	for i, f := range files {
		path := filepath.Join(docsDir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			return nil, fmt.Errorf("write sample document: %w", err)
		}
		docs = append(docs, Document{
			Title:   f.title,
			Path:    path,
			Kind:    f.kind,
			AddedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return docs, nil
}

// sampleRecordings registers audio files the user drops into
// data/calls. The files themselves are not generated; a missing file
// surfaces as a failed transcription row, not a setup error.
func sampleRecordings(dataDir string, base time.Time) []CallRecording {
	callsDir := filepath.Join(dataDir, "calls")
	return []CallRecording{
		{Agent: "Sam P.", Path: filepath.Join(callsDir, "call_0001.wav"), DurationSecs: 184, RecordedAt: base.Add(12 * time.Hour)},
		{Agent: "Ruth K.", Path: filepath.Join(callsDir, "call_0002.wav"), DurationSecs: 86, RecordedAt: base.Add(36 * time.Hour)},
	}
}
