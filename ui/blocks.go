package ui

import (
	"fmt"

	"github.com/slack-go/slack"

	"votebot-api/domain"
)

const dueDateFormat = "Mon, Jan 2 2006 15:04"

// ConfirmationBlocks renders the private "your poll was created" message
// sent back to the author.
func ConfirmationBlocks(sub domain.PollSubmission) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, ":white_check_mark: Poll created", true, false),
		),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType,
				fmt.Sprintf("*%s*\nCloses %s", sub.Title, sub.DueAt.Format(dueDateFormat)),
				false, false),
			nil, nil,
		),
	}
	for _, option := range sub.Options {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "• "+option, false, false),
			nil, nil,
		))
	}
	return blocks
}

// AnnouncementBlocks renders the public poll post. Every option carries a
// vote button whose value is the option text, which is what the
// vote_option action handler receives.
func AnnouncementBlocks(sub domain.PollSubmission) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, sub.Title, false, false),
		),
		slack.NewContextBlock(
			"",
			slack.NewTextBlockObject(slack.MarkdownType,
				fmt.Sprintf("Posted by *%s* · closes %s", sub.AuthorName, sub.DueAt.Format(dueDateFormat)),
				false, false),
		),
		slack.NewDividerBlock(),
	}
	for _, option := range sub.Options {
		vote := slack.NewButtonBlockElement(
			ActionVoteOption,
			option,
			slack.NewTextBlockObject(slack.PlainTextType, "Vote", false, false),
		)
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, option, false, false),
			nil,
			slack.NewAccessory(vote),
		))
	}
	return blocks
}
