package actor

import (
	"log/slog"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/codewandler/actorkit/internal/codec"
)

// WithCorrelationID returns an AroundWrapper that generates a short random
// id for each drain invocation and logs a single "drain starting" line
// through log carrying that id as an attribute, via slog's With. Use it to
// mark the start of a drain in logs with an id unique to that invocation.
func WithCorrelationID(log *slog.Logger) AroundWrapper {
	return func(next func()) func() {
		return func() {
			id := gonanoid.MustGenerate("abcdefghijklmnopqrstuvwxyz0123456789", 10)
			log.With(slog.String("correlation_id", id)).Debug("actor: drain starting")
			next()
		}
	}
}

type auditRecord struct {
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
}

// WithAuditLog returns an AroundWrapper that records the wall-clock start
// and duration of each drain invocation as indented JSON, written through
// log at info level. It is intended as a usage example of composing an
// AroundWrapper around arbitrary serialization, not a production audit
// trail: it captures drain timing only, not individual messages.
func WithAuditLog(log *slog.Logger) AroundWrapper {
	c := codec.JSONCodec{}
	return func(next func()) func() {
		return func() {
			started := time.Now()
			next()
			rec := auditRecord{StartedAt: started, Duration: time.Since(started)}
			b, err := c.Marshal(rec)
			if err != nil {
				log.Error("actor: audit marshal failed", slog.Any("err", err))
				return
			}
			log.Info("actor: drain audit", slog.String("record", string(b)))
		}
	}
}
