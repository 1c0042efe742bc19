// Package messenger wraps the Slack Web API calls the poll workflow
// needs: posting messages and opening or updating the draft modal.
package messenger

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// Messenger delivers rendered content through the Slack Web API.
type Messenger struct {
	client *slack.Client
}

// New creates a Messenger authenticated with the given bot token.
func New(token string, opts ...slack.Option) *Messenger {
	return &Messenger{client: slack.New(token, opts...)}
}

// SendBlocks posts a block message to the given recipient (a user or
// channel ID). The fallback text is used by clients that cannot render
// blocks and for notifications.
func (m *Messenger) SendBlocks(ctx context.Context, recipientID, fallback string, blocks []slack.Block) error {
	_, _, err := m.client.PostMessageContext(ctx, recipientID,
		slack.MsgOptionText(fallback, false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return fmt.Errorf("post message to %s: %w", recipientID, err)
	}
	return nil
}

// UpdateView replaces an open modal with a new rendering. The hash guards
// against clobbering a view that changed since the triggering event.
func (m *Messenger) UpdateView(ctx context.Context, viewID, hash string, view slack.ModalViewRequest) error {
	if _, err := m.client.UpdateViewContext(ctx, view, "", hash, viewID); err != nil {
		return fmt.Errorf("update view %s: %w", viewID, err)
	}
	return nil
}

// OpenView opens a modal in response to a user interaction. Trigger IDs
// are single use and expire after a few seconds.
func (m *Messenger) OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	if _, err := m.client.OpenViewContext(ctx, triggerID, view); err != nil {
		return fmt.Errorf("open view: %w", err)
	}
	return nil
}
