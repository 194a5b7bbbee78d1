package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(level slog.Level, msg string, attrs ...slog.Attr) slog.Record {
	r := slog.NewRecord(time.Date(2026, 1, 15, 10, 30, 45, 123000000, time.UTC), level, msg, 0)
	r.AddAttrs(attrs...)
	return r
}

func TestTerminalHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, nil, false)

	require.NoError(t, h.Handle(context.Background(), record(slog.LevelInfo, "server started", slog.String("addr", "0.0.0.0:8080"))))

	assert.Equal(t, "10:30:45.123 INF server started addr=0.0.0.0:8080\n", buf.String())
}

func TestTerminalHandler_Levels(t *testing.T) {
	tests := map[slog.Level]string{
		slog.LevelDebug: "DBG",
		slog.LevelInfo:  "INF",
		slog.LevelWarn:  "WRN",
		slog.LevelError: "ERR",
	}
	for level, label := range tests {
		var buf bytes.Buffer
		h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}, false)
		require.NoError(t, h.Handle(context.Background(), record(level, "m")))
		assert.Contains(t, buf.String(), " "+label+" ")
	}
}

func TestTerminalHandler_Colour(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, nil, true)

	require.NoError(t, h.Handle(context.Background(), record(slog.LevelError, "boom")))

	assert.Contains(t, buf.String(), ansiRed+"ERR"+ansiReset)
	assert.Contains(t, buf.String(), ansiBold+"boom"+ansiReset)
}

func TestTerminalHandler_Enabled(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}, false)
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestTerminalHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTerminalHandler(&buf, nil, false)).
		With(slog.String("component", "git")).
		WithGroup("repo")

	logger.Info("opened", slog.String("name", "delve"), slog.Group("rev", slog.String("sha", "abc")))

	out := buf.String()
	assert.Contains(t, out, " component=git")
	assert.Contains(t, out, " repo.name=delve")
	assert.Contains(t, out, " repo.rev.sha=abc")
}

func TestTerminalHandler_QuotesStrings(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, nil, false)

	require.NoError(t, h.Handle(context.Background(), record(slog.LevelInfo, "m",
		slog.String("path", "my file.go"),
		slog.String("empty", ""),
	)))

	assert.Contains(t, buf.String(), `path="my file.go"`)
	assert.Contains(t, buf.String(), `empty=""`)
}

func TestTerminalHandler_EmptyGroupName(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, nil, false)
	assert.Same(t, h, h.WithGroup(""))
}
