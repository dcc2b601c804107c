package logs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

func TestHandler(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		logger.Warn("test", "hello", "world!")
	})
	if !strings.Contains(buf.String(), "hello=world!") {
		t.Fatalf("got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "app=thisc") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestWrapSpan(t *testing.T) {
	base := errors.New("foo")
	if err := WrapSpan(context.Background(), base); err != base {
		t.Fatalf("got %v", err)
	}
	ctx := context.WithValue(context.Background(), SpanKey, Span("abc"))
	err := WrapSpan(ctx, base)
	if !errors.Is(err, base) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "span: abc") {
		t.Fatalf("got %v", err)
	}
	if WrapSpan(ctx, nil) != nil {
		t.Fatal()
	}
}

func TestToJournalKey(t *testing.T) {
	if key := toJournalKey("logs.span-id"); key != "LOGS_SPAN_ID" {
		t.Fatalf("got %s", key)
	}
}

func TestLevel(t *testing.T) {
	buf := new(bytes.Buffer)
	SetLevel(slog.LevelDebug)
	defer SetLevel(slog.LevelWarn)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		logger.Debug("debug")
	})
	if !strings.Contains(buf.String(), "msg=debug") {
		t.Fatalf("got %q", buf.String())
	}
}
