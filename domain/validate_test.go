package domain

import (
	"testing"
	"time"
)

func validSubmission(now time.Time) PollSubmission {
	return PollSubmission{
		Title:      "Lunch",
		DueAt:      now.Add(time.Hour),
		Options:    Draft{"A", "B"},
		AuthorID:   "U123",
		AuthorName: "dan",
	}
}

func TestValidateSubmissionOK(t *testing.T) {
	now := time.Now()
	if err := ValidateSubmission(validSubmission(now), now); err != nil {
		t.Fatalf("expected valid submission, got %v", err)
	}
}

func TestValidateSubmissionMissingTitle(t *testing.T) {
	now := time.Now()
	for _, title := range []string{"", "   ", "\t"} {
		sub := validSubmission(now)
		sub.Title = title
		err := ValidateSubmission(sub, now)
		if err == nil || err.Kind != MissingTitle {
			t.Fatalf("expected MissingTitle for %q, got %v", title, err)
		}
		if err.Field != FieldTitle {
			t.Fatalf("expected field %q, got %q", FieldTitle, err.Field)
		}
	}
}

func TestValidateSubmissionTitleCheckedFirst(t *testing.T) {
	// A submission missing everything must always report the title first.
	err := ValidateSubmission(PollSubmission{}, time.Now())
	if err == nil || err.Kind != MissingTitle {
		t.Fatalf("expected MissingTitle, got %v", err)
	}
}

func TestValidateSubmissionMissingDueDate(t *testing.T) {
	now := time.Now()
	sub := validSubmission(now)
	sub.DueAt = time.Time{}
	err := ValidateSubmission(sub, now)
	if err == nil || err.Kind != MissingDueDate {
		t.Fatalf("expected MissingDueDate, got %v", err)
	}
	if err.Field != FieldDueDate {
		t.Fatalf("expected field %q, got %q", FieldDueDate, err.Field)
	}
}

func TestValidateSubmissionDueDateBoundary(t *testing.T) {
	now := time.Now()

	sub := validSubmission(now)
	sub.DueAt = now
	if err := ValidateSubmission(sub, now); err == nil || err.Kind != DueDateInPast {
		t.Fatalf("expected DueDateInPast for dueAt == now, got %v", err)
	}

	sub.DueAt = now.Add(-time.Minute)
	if err := ValidateSubmission(sub, now); err == nil || err.Kind != DueDateInPast {
		t.Fatalf("expected DueDateInPast for past dueAt, got %v", err)
	}

	sub.DueAt = now.Add(time.Millisecond)
	if err := ValidateSubmission(sub, now); err != nil {
		t.Fatalf("expected dueAt one millisecond ahead to pass, got %v", err)
	}
}

func TestValidateSubmissionOptionCountBoundaries(t *testing.T) {
	now := time.Now()
	testCases := map[int]bool{0: false, 1: true, 8: true, 9: false}
	for count, ok := range testCases {
		sub := validSubmission(now)
		sub.Options = make(Draft, count)
		for i := range sub.Options {
			sub.Options[i] = "option"
		}
		err := ValidateSubmission(sub, now)
		if ok && err != nil {
			t.Fatalf("expected %d options to validate, got %v", count, err)
		}
		if !ok {
			if err == nil || err.Kind != InvalidOptionCount {
				t.Fatalf("expected InvalidOptionCount for %d options, got %v", count, err)
			}
			if err.Field != FieldOptions {
				t.Fatalf("expected field %q, got %q", FieldOptions, err.Field)
			}
		}
	}
}

func TestValidateSubmissionShortCircuits(t *testing.T) {
	// Missing title and a past due date: only the title error is reported.
	now := time.Now()
	sub := PollSubmission{Title: " ", DueAt: now.Add(-time.Hour), Options: Draft{}}
	err := ValidateSubmission(sub, now)
	if err == nil || err.Kind != MissingTitle {
		t.Fatalf("expected MissingTitle to win, got %v", err)
	}
}
