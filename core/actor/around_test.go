package actor

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithCorrelationID_AttachesIDToLogLine(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	a := New(Options{Wrappers: []AroundWrapper{WithCorrelationID(log)}}, Any(
		func(ctx *Context, msg any) error { return nil },
	))
	a.Send("go")

	require.Eventually(t, func() bool {
		return bytes.Contains(buf.Bytes(), []byte("correlation_id"))
	}, time.Second, time.Millisecond)
}

func TestWithAuditLog_RecordsDrainTiming(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	a := New(Options{Wrappers: []AroundWrapper{WithAuditLog(log)}}, Any(
		func(ctx *Context, msg any) error { return nil },
	))
	a.Send("go")

	require.Eventually(t, func() bool {
		return bytes.Contains(buf.Bytes(), []byte("drain audit"))
	}, time.Second, time.Millisecond)
}
