package main

import (
	"fmt"
	"log"

	"github.com/slack-go/slack"
)

// Notifier posts run summaries to a Slack channel. A nil Notifier is
// valid and drops every message, so callers never need to check whether
// Slack is configured.
type Notifier struct {
	api       *slack.Client
	channelID string
}

// NewNotifier returns nil when Slack is not configured.
func NewNotifier(cfg Config) *Notifier {
	if !cfg.NotifierConfigured() {
		log.Println("Slack notifications disabled (slack_bot_token or slack_channel_id not set)")
		return nil
	}
	return &Notifier{
		api:       slack.New(cfg.SlackBotToken),
		channelID: cfg.SlackChannelID,
	}
}

// PostSummary posts the outcome of one or more demo runs.
func (n *Notifier) PostSummary(title, summary string) {
	if n == nil {
		return
	}
	msg := fmt.Sprintf("*%s*\n```%s```", title, summary)
	_, _, err := n.api.PostMessage(n.channelID, slack.MsgOptionText(msg, false))
	if err != nil {
		log.Printf("Slack post error: %v", err)
	}
}

// PostFilteredAlert flags rows the safety guard suppressed so someone
// can review them.
func (n *Notifier) PostFilteredAlert(results []DemoResult) {
	if n == nil {
		return
	}
	filtered := 0
	for _, r := range results {
		filtered += r.Filtered
	}
	if filtered == 0 {
		return
	}
	msg := fmt.Sprintf(":warning: %d rows were filtered by the safety guard and need review.", filtered)
	_, _, err := n.api.PostMessage(n.channelID, slack.MsgOptionText(msg, false))
	if err != nil {
		log.Printf("Slack post error: %v", err)
	}
}
