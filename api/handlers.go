package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"votebot-api/domain"
	"votebot-api/ui"
)

// SlashCommand is the command that opens a fresh poll modal.
const SlashCommand = "/vote"

// Register wires up all routes on the provided Echo instance.
func Register(e *echo.Echo, store Store, notifier Notifier, deduper Deduper, verifier *RequestVerifier, logger *log.Logger) {
	g := e.Group("/slack", verifier.Middleware())
	g.POST("/interactions", interactions(store, notifier, deduper, logger))
	g.POST("/commands", commands(notifier, logger))

	e.GET("/healthz", healthz(store))
}

// ackResponse is the body of a view_submission acknowledgement. An empty
// errors map is omitted so a plain {"response_action":"clear"} closes the
// modal.
type ackResponse struct {
	ResponseAction string            `json:"response_action"`
	Errors         map[string]string `json:"errors,omitempty"`
}

func healthz(store Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := store.Ping(c.Request().Context()); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	}
}

// commands handles the slash command that opens the draft modal with an
// empty option list. Slash commands have to be answered quickly, so an
// open failure is logged and still acknowledged.
func commands(notifier Notifier, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		command := c.FormValue("command")
		triggerID := c.FormValue("trigger_id")
		if command != SlashCommand || triggerID == "" {
			return c.NoContent(http.StatusOK)
		}

		view, err := ui.PollModal(domain.Draft{})
		if err != nil {
			logger.WithError(err).Error("render poll modal")
			return c.NoContent(http.StatusOK)
		}
		if err := notifier.OpenView(c.Request().Context(), triggerID, view); err != nil {
			logger.WithError(err).Error("open poll modal")
		}
		return c.NoContent(http.StatusOK)
	}
}

// interactions dispatches interactivity callbacks by payload type and
// action identifier. The server holds no session state between events:
// everything an event needs travels in its payload.
func interactions(store Store, notifier Notifier, deduper Deduper, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.FormValue("payload")
		if raw == "" {
			return c.NoContent(http.StatusBadRequest)
		}
		var p interactionPayload
		if err := sonic.UnmarshalString(raw, &p); err != nil {
			logger.WithError(err).Warn("unparseable interaction payload")
			return c.NoContent(http.StatusBadRequest)
		}

		// Submissions for foreign callbacks are not ours; bail before
		// the dedupe key for this trigger ID is consumed.
		if p.Type == interactionViewSubmission && p.View.CallbackID != ui.CallbackVoteModal {
			return c.NoContent(http.StatusOK)
		}

		ctx := c.Request().Context()
		key := dedupeKey(p)
		if added, err := deduper.Add(ctx, key); err != nil {
			// Dedupe is best effort; never lose an interaction over it.
			logger.WithError(err).Warn("interaction dedupe unavailable")
		} else if !added {
			logger.WithField("trigger_id", p.TriggerID).Debug("duplicate interaction delivery")
			return c.NoContent(http.StatusOK)
		}

		switch p.Type {
		case interactionBlockActions:
			return blockAction(c, p, notifier, logger)
		case interactionViewSubmission:
			err := submitVote(c, p, store, notifier, logger)
			if c.Response().Status == http.StatusInternalServerError {
				// Release the key so the retried delivery is processed.
				if derr := deduper.Remove(ctx, key); derr != nil {
					logger.WithError(derr).Warn("release interaction dedupe key")
				}
			}
			return err
		default:
			return c.NoContent(http.StatusOK)
		}
	}
}

// dedupeKey identifies one interaction delivery. Trigger IDs are unique
// per interaction; a payload without one gets a fresh key so it is never
// mistaken for a duplicate.
func dedupeKey(p interactionPayload) string {
	if p.TriggerID != "" {
		return p.TriggerID
	}
	return uuid.NewString()
}

func blockAction(c echo.Context, p interactionPayload, notifier Notifier, logger *log.Logger) error {
	// Actions outside a view, or with no action entry, are not ours.
	if p.View.ID == "" || len(p.Actions) == 0 {
		return c.NoContent(http.StatusOK)
	}
	action := p.Actions[0]

	switch action.ActionID {
	case ui.ActionAddSelection:
		if action.Type != controlPlainTextInput {
			return c.NoContent(http.StatusOK)
		}
		// Enter on an empty field is acknowledged but is not an edit.
		if strings.TrimSpace(action.Value) == "" {
			return c.NoContent(http.StatusOK)
		}
		return mutateDraft(c, p, notifier, logger, func(d domain.Draft) domain.Draft {
			return domain.AppendOption(d, action.Value)
		})

	case ui.ActionRemoveSelection:
		if action.Type != controlButton {
			return c.NoContent(http.StatusOK)
		}
		return mutateDraft(c, p, notifier, logger, func(d domain.Draft) domain.Draft {
			return domain.RemoveOption(d, action.Value)
		})

	case ui.ActionVoteOption:
		if action.Type != controlButton {
			return c.NoContent(http.StatusOK)
		}
		// Tallying is handled elsewhere; the button is acknowledged only.
		logger.WithFields(log.Fields{
			"user":   p.User.ID,
			"option": action.Value,
		}).Info("vote received")
		return c.NoContent(http.StatusOK)

	default:
		return c.NoContent(http.StatusOK)
	}
}

// mutateDraft decodes the draft carried by the view, applies the edit,
// and pushes a re-rendered modal with the new draft attached. The event
// is acknowledged with 200 in every case; a malformed token or a failed
// view update is logged and dropped.
func mutateDraft(c echo.Context, p interactionPayload, notifier Notifier, logger *log.Logger, edit func(domain.Draft) domain.Draft) error {
	draft, err := domain.DecodeDraft(p.View.PrivateMetadata)
	if err != nil {
		logger.WithError(err).WithField("view", p.View.ID).Error("corrupt draft token, dropping interaction")
		return c.NoContent(http.StatusOK)
	}

	view, err := ui.PollModal(edit(draft))
	if err != nil {
		logger.WithError(err).Error("render poll modal")
		return c.NoContent(http.StatusOK)
	}
	if err := notifier.UpdateView(c.Request().Context(), p.View.ID, p.View.Hash, view); err != nil {
		logger.WithError(err).WithField("view", p.View.ID).Error("update poll modal")
	}
	return c.NoContent(http.StatusOK)
}

// submitVote validates the assembled submission and, when it passes, runs
// the commit sequence. A validation failure is returned to the form as a
// single field error. A commit failure answers 500 so the client keeps
// the modal open instead of treating the attempt as done.
func submitVote(c echo.Context, p interactionPayload, store Store, notifier Notifier, logger *log.Logger) error {
	m, ctx := newSubmitMetrics(c.Request().Context(), logger)
	// opErr is the failure of the submission itself, not of writing the
	// HTTP response, so the span records what actually went wrong.
	var opErr error
	defer func() {
		m.Log(c.Response().Status, opErr)
	}()

	decodeStart := time.Now()
	options, decodeErr := domain.DecodeDraft(p.View.PrivateMetadata)
	m.ObserveDecode(time.Since(decodeStart))
	if decodeErr != nil {
		m.SetErrorStage("decode")
		opErr = decodeErr
		logger.WithError(decodeErr).WithField("view", p.View.ID).Error("corrupt draft token on submission")
		return c.NoContent(http.StatusInternalServerError)
	}
	m.SetOptionCount(len(options))

	sub := p.submission(options)

	validateStart := time.Now()
	ferr := domain.ValidateSubmission(sub, time.Now())
	m.ObserveValidate(time.Since(validateStart))
	if ferr != nil {
		m.SetErrorStage("validate_" + string(ferr.Kind))
		return c.JSON(http.StatusOK, ackResponse{
			ResponseAction: "errors",
			Errors:         map[string]string{ferr.Field: ferr.Message},
		})
	}

	if commitErr := commitPoll(ctx, store, notifier, sub, m); commitErr != nil {
		opErr = commitErr
		logger.WithError(commitErr).WithField("user", sub.AuthorID).Error("poll commit failed")
		return c.NoContent(http.StatusInternalServerError)
	}

	logger.WithFields(log.Fields{
		"user":    sub.AuthorID,
		"title":   sub.Title,
		"options": len(sub.Options),
	}).Info("poll created")

	return c.JSON(http.StatusOK, ackResponse{ResponseAction: "clear"})
}
