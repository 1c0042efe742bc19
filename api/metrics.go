package api

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "votebot-api"

// submitMetrics collects per-submission stage timings for the structured
// log record and the poll.submit span.
type submitMetrics struct {
	logger *log.Logger
	span   trace.Span
	start  time.Time

	decodeDuration   time.Duration
	validateDuration time.Duration
	notifyDuration   time.Duration
	persistDuration  time.Duration
	optionCount      int
	errorStage       string
}

func newSubmitMetrics(ctx context.Context, logger *log.Logger) (*submitMetrics, context.Context) {
	spanCtx, span := otel.Tracer(tracerName).Start(ctx, "poll.submit")
	m := &submitMetrics{
		logger: logger,
		span:   span,
		start:  time.Now(),
	}
	return m, spanCtx
}

func (m *submitMetrics) ObserveDecode(d time.Duration) {
	if d > 0 {
		m.decodeDuration = d
	}
}

func (m *submitMetrics) ObserveValidate(d time.Duration) {
	if d > 0 {
		m.validateDuration = d
	}
}

func (m *submitMetrics) ObserveNotify(d time.Duration) {
	if d > 0 {
		m.notifyDuration = d
	}
}

func (m *submitMetrics) ObservePersist(d time.Duration) {
	if d > 0 {
		m.persistDuration = d
	}
}

func (m *submitMetrics) SetOptionCount(count int) {
	if count < 0 {
		count = 0
	}
	m.optionCount = count
}

func (m *submitMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

// Log finishes the span and emits one structured record for the attempt.
func (m *submitMetrics) Log(status int, err error) {
	if m == nil {
		return
	}

	if m.span != nil {
		m.span.SetAttributes(
			attribute.Int("http.status_code", status),
			attribute.Int("poll.option_count", m.optionCount),
		)
		if m.errorStage != "" {
			m.span.SetAttributes(attribute.String("error.stage", m.errorStage))
		}
		if err != nil {
			m.span.RecordError(err)
			m.span.SetStatus(codes.Error, err.Error())
		} else {
			m.span.SetStatus(codes.Ok, "")
		}
		m.span.End()
	}

	if m.logger == nil {
		return
	}
	fields := log.Fields{
		"route":        "/slack/interactions",
		"status":       status,
		"total_ms":     durationToMillis(time.Since(m.start)),
		"option_count": m.optionCount,
	}
	if m.decodeDuration > 0 {
		fields["decode_ms"] = durationToMillis(m.decodeDuration)
	}
	if m.validateDuration > 0 {
		fields["validate_ms"] = durationToMillis(m.validateDuration)
	}
	if m.notifyDuration > 0 {
		fields["notify_ms"] = durationToMillis(m.notifyDuration)
	}
	if m.persistDuration > 0 {
		fields["persist_ms"] = durationToMillis(m.persistDuration)
	}
	if m.errorStage != "" {
		fields["error_stage"] = m.errorStage
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	m.logger.WithFields(fields).Info("poll.submit.metrics")
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
