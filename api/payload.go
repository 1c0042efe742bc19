package api

import (
	"time"

	"votebot-api/domain"
	"votebot-api/ui"
)

// Interaction payload shapes as delivered in the form-encoded "payload"
// field of an interactivity request. Only the fields the dispatcher reads
// are declared.

const (
	interactionBlockActions   = "block_actions"
	interactionViewSubmission = "view_submission"

	controlPlainTextInput = "plain_text_input"
	controlButton         = "button"
)

type interactionPayload struct {
	Type      string              `json:"type"`
	TriggerID string              `json:"trigger_id"`
	User      interactionUser     `json:"user"`
	View      interactionView     `json:"view"`
	Actions   []interactionAction `json:"actions"`
}

type interactionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type interactionView struct {
	ID              string           `json:"id"`
	Hash            string           `json:"hash"`
	CallbackID      string           `json:"callback_id"`
	PrivateMetadata string           `json:"private_metadata"`
	State           interactionState `json:"state"`
}

type interactionState struct {
	Values map[string]map[string]stateValue `json:"values"`
}

type stateValue struct {
	Type             string `json:"type"`
	Value            string `json:"value"`
	SelectedDateTime int64  `json:"selected_date_time"`
}

type interactionAction struct {
	ActionID string `json:"action_id"`
	BlockID  string `json:"block_id"`
	Type     string `json:"type"`
	Value    string `json:"value"`
}

// displayName prefers the human-readable name over the handle.
func (u interactionUser) displayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// submission assembles the candidate poll from the submitted view state
// and the already-decoded draft.
func (p interactionPayload) submission(options domain.Draft) domain.PollSubmission {
	sub := domain.PollSubmission{
		Options:    options,
		AuthorID:   p.User.ID,
		AuthorName: p.User.displayName(),
	}
	values := p.View.State.Values
	if title, ok := values[ui.BlockTitle][ui.ActionTitleInput]; ok {
		sub.Title = title.Value
	}
	if due, ok := values[ui.BlockDueDate][ui.ActionDueDatePicker]; ok && due.SelectedDateTime != 0 {
		sub.DueAt = time.Unix(due.SelectedDateTime, 0)
	}
	return sub
}
