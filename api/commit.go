package api

import (
	"context"
	"fmt"
	"time"

	"votebot-api/domain"
	"votebot-api/ui"
)

// Fallback texts for clients that cannot render blocks.
const (
	confirmationText = "Your poll has been created!"
	announcementText = "A new poll is open!"
)

// commitPoll runs the side effects of a validated submission in a fixed
// order: confirmation message, announcement message, durable record. The
// caller acknowledges the modal afterwards, so the acknowledgement is
// always the last step. The sequence is deliberately not transactional;
// the first failing step aborts the rest and nothing already done is
// compensated. Callers log the returned error and leave the form open.
func commitPoll(ctx context.Context, store Store, notifier Notifier, sub domain.PollSubmission, m *submitMetrics) error {
	notifyStart := time.Now()
	if err := notifier.SendBlocks(ctx, sub.AuthorID, confirmationText, ui.ConfirmationBlocks(sub)); err != nil {
		m.SetErrorStage("notify_confirmation")
		return fmt.Errorf("send confirmation: %w", err)
	}
	if err := notifier.SendBlocks(ctx, sub.AuthorID, announcementText, ui.AnnouncementBlocks(sub)); err != nil {
		m.SetErrorStage("notify_announcement")
		return fmt.Errorf("send announcement: %w", err)
	}
	m.ObserveNotify(time.Since(notifyStart))

	persistStart := time.Now()
	if err := store.CreatePollRecord(ctx, sub.Record()); err != nil {
		m.SetErrorStage("persist")
		return fmt.Errorf("create poll record: %w", err)
	}
	m.ObservePersist(time.Since(persistStart))
	return nil
}
