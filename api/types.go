package api

import (
	"context"

	"github.com/slack-go/slack"

	"votebot-api/domain"
)

// Store abstracts persistence for handlers.
type Store interface {
	CreatePollRecord(ctx context.Context, rec domain.PollRecord) error
	Ping(ctx context.Context) error
}

// Notifier delivers rendered content to the chat client: messages to
// recipients and modal views opened or replaced in response to events.
type Notifier interface {
	SendBlocks(ctx context.Context, recipientID, fallback string, blocks []slack.Block) error
	UpdateView(ctx context.Context, viewID, hash string, view slack.ModalViewRequest) error
	OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error
}

// Deduper prevents reprocessing of redelivered interaction events.
type Deduper interface {
	// Add records the interaction key and returns true if it was newly added.
	Add(ctx context.Context, key string) (bool, error)
	// Remove deletes a previously added key so a failed interaction can be retried.
	Remove(ctx context.Context, key string) error
}
