// Package ui renders the Block Kit surfaces of the poll workflow: the
// draft modal the author edits and the messages posted once a poll is
// committed. Rendering is pure; delivery lives in the messenger package.
package ui

import (
	"fmt"

	"github.com/slack-go/slack"

	"votebot-api/domain"
)

// Identifiers shared between the rendered modal and the interaction
// dispatcher. The block IDs double as validation error keys.
const (
	CallbackVoteModal = "vote_modal"

	BlockTitle   = domain.FieldTitle
	BlockDueDate = domain.FieldDueDate
	BlockOptions = domain.FieldOptions

	ActionTitleInput      = "plain_text_input-action"
	ActionDueDatePicker   = "datepicker-action"
	ActionAddSelection    = "add_selection"
	ActionRemoveSelection = "remove_selection"
	ActionVoteOption      = "vote_option"
)

// PollModal renders the draft form for the given option list. The list is
// re-encoded into the view's private metadata so the next interaction
// carries the full draft state back to us. Works for the empty draft (the
// fresh modal) up to the maximum allowed option count.
func PollModal(options domain.Draft) (slack.ModalViewRequest, error) {
	token, err := domain.EncodeDraft(options)
	if err != nil {
		return slack.ModalViewRequest{}, err
	}

	blocks := []slack.Block{
		slack.NewInputBlock(
			BlockTitle,
			slack.NewTextBlockObject(slack.PlainTextType, "Poll title", false, false),
			nil,
			slack.NewPlainTextInputBlockElement(
				slack.NewTextBlockObject(slack.PlainTextType, "What are we deciding?", false, false),
				ActionTitleInput,
			),
		),
		slack.NewInputBlock(
			BlockDueDate,
			slack.NewTextBlockObject(slack.PlainTextType, "Due date", false, false),
			nil,
			slack.NewDateTimePickerBlockElement(ActionDueDatePicker),
		),
		optionInputBlock(),
	}

	if len(options) > 0 {
		blocks = append(blocks, slack.NewDividerBlock())
		for _, option := range options {
			blocks = append(blocks, optionRowBlock(option))
		}
	}

	view := slack.ModalViewRequest{
		Type:            slack.VTModal,
		Title:           slack.NewTextBlockObject(slack.PlainTextType, "Create a poll", false, false),
		Submit:          slack.NewTextBlockObject(slack.PlainTextType, "Create", false, false),
		Close:           slack.NewTextBlockObject(slack.PlainTextType, "Cancel", false, false),
		CallbackID:      CallbackVoteModal,
		PrivateMetadata: token,
		Blocks:          slack.Blocks{BlockSet: blocks},
	}
	return view, nil
}

func optionInputBlock() *slack.InputBlock {
	in := slack.NewInputBlock(
		BlockOptions,
		slack.NewTextBlockObject(slack.PlainTextType, "Add an option", false, false),
		slack.NewTextBlockObject(slack.PlainTextType, fmt.Sprintf("Press enter to add, up to %d options.", domain.MaxOptions), false, false),
		slack.NewPlainTextInputBlockElement(
			slack.NewTextBlockObject(slack.PlainTextType, "New option", false, false),
			ActionAddSelection,
		),
	)
	// The draft lives in private metadata, not in this input's state, so
	// each enter press has to reach the dispatcher as a block action.
	in.DispatchAction = true
	in.Optional = true
	return in
}

func optionRowBlock(option string) *slack.SectionBlock {
	remove := slack.NewButtonBlockElement(
		ActionRemoveSelection,
		option,
		slack.NewTextBlockObject(slack.PlainTextType, "Remove", false, false),
	).WithStyle(slack.StyleDanger)

	return slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, "• "+option, false, false),
		nil,
		slack.NewAccessory(remove),
	)
}
