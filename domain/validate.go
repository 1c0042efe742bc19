package domain

import (
	"strings"
	"time"
)

// ValidationKind identifies which business rule a submission violated.
type ValidationKind string

const (
	MissingTitle       ValidationKind = "missing_title"
	MissingDueDate     ValidationKind = "missing_due_date"
	DueDateInPast      ValidationKind = "due_date_in_past"
	InvalidOptionCount ValidationKind = "invalid_option_count"
)

// Option count bounds enforced at submission time.
const (
	MinOptions = 1
	MaxOptions = 8
)

// Block identifiers of the modal fields, used as error keys so the client
// renders the message inline next to the offending input.
const (
	FieldTitle   = "title"
	FieldDueDate = "dueDate"
	FieldOptions = "option_input"
)

// FieldError reports a single failed validation rule for one modal field.
type FieldError struct {
	Field   string
	Kind    ValidationKind
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidateSubmission checks a submission against the poll creation rules.
// Rules run in a fixed order and stop at the first failure, because the
// modal acknowledgement channel carries exactly one field error per
// attempt. A nil return means the submission is ready to commit.
func ValidateSubmission(s PollSubmission, now time.Time) *FieldError {
	if strings.TrimSpace(s.Title) == "" {
		return &FieldError{
			Field:   FieldTitle,
			Kind:    MissingTitle,
			Message: "A poll title is required.",
		}
	}
	if s.DueAt.IsZero() {
		return &FieldError{
			Field:   FieldDueDate,
			Kind:    MissingDueDate,
			Message: "A poll due date is required.",
		}
	}
	if !s.DueAt.After(now) {
		return &FieldError{
			Field:   FieldDueDate,
			Kind:    DueDateInPast,
			Message: "The poll due date must be later than the current time.",
		}
	}
	if len(s.Options) < MinOptions || len(s.Options) > MaxOptions {
		return &FieldError{
			Field:   FieldOptions,
			Kind:    InvalidOptionCount,
			Message: "A poll needs between one and eight options.",
		}
	}
	return nil
}
