package api

import (
	"context"
	"errors"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"votebot-api/domain"
)

func commitSubmission() domain.PollSubmission {
	return domain.PollSubmission{
		Title:      "Lunch",
		DueAt:      time.Now().Add(time.Hour),
		Options:    domain.Draft{"A", "B"},
		AuthorID:   "U123",
		AuthorName: "dan",
	}
}

func TestCommitPollStepOrder(t *testing.T) {
	journal := []string{}
	store := &mockStore{journal: &journal}
	notifier := &mockNotifier{journal: &journal}
	m, ctx := newSubmitMetrics(context.Background(), log.New())

	if err := commitPoll(ctx, store, notifier, commitSubmission(), m); err != nil {
		t.Fatalf("commit: %v", err)
	}

	want := []string{"send", "send", "persist"}
	if len(journal) != len(want) {
		t.Fatalf("unexpected journal %#v", journal)
	}
	for i := range want {
		if journal[i] != want[i] {
			t.Fatalf("steps out of order: %#v", journal)
		}
	}
	if notifier.sent[0].fallback != confirmationText {
		t.Fatalf("expected confirmation first, got %q", notifier.sent[0].fallback)
	}
	if notifier.sent[1].fallback != announcementText {
		t.Fatalf("expected announcement second, got %q", notifier.sent[1].fallback)
	}
}

func TestCommitPollAbortsOnFirstFailure(t *testing.T) {
	testCases := map[string]struct {
		store        *mockStore
		notifier     *mockNotifier
		wantSent     int
		wantPersists int
	}{
		"confirmation_fails": {
			store:        &mockStore{},
			notifier:     &mockNotifier{failSendAt: 1},
			wantSent:     0,
			wantPersists: 0,
		},
		"announcement_fails": {
			store:        &mockStore{},
			notifier:     &mockNotifier{failSendAt: 2},
			wantSent:     1,
			wantPersists: 0,
		},
		"persist_fails": {
			store:        &mockStore{err: errors.New("insert failed")},
			notifier:     &mockNotifier{},
			wantSent:     2,
			wantPersists: 0,
		},
	}

	for name, tt := range testCases {
		t.Run(name, func(t *testing.T) {
			m, ctx := newSubmitMetrics(context.Background(), log.New())
			err := commitPoll(ctx, tt.store, tt.notifier, commitSubmission(), m)
			if err == nil {
				t.Fatal("expected error")
			}
			if len(tt.notifier.sent) != tt.wantSent {
				t.Fatalf("expected %d messages, got %d", tt.wantSent, len(tt.notifier.sent))
			}
			if len(tt.store.records) != tt.wantPersists {
				t.Fatalf("expected %d records, got %d", tt.wantPersists, len(tt.store.records))
			}
		})
	}
}

func TestCommitPollRecordContents(t *testing.T) {
	store := &mockStore{}
	notifier := &mockNotifier{}
	m, ctx := newSubmitMetrics(context.Background(), log.New())

	if err := commitPoll(ctx, store, notifier, commitSubmission(), m); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(store.records) != 1 {
		t.Fatalf("expected one record, got %d", len(store.records))
	}
	rec := store.records[0]
	for i, opt := range rec.Options {
		if opt.Index != i {
			t.Fatalf("expected dense indexes, got %#v", rec.Options)
		}
	}
}
