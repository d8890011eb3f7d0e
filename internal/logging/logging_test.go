package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"
)

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	t.Parallel()

	var debugBuf, warnBuf bytes.Buffer
	logger := slog.New(MultiHandler(
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		nil,
		slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)).With("component", "checkout_service")

	logger.Info("order placed", "order_id", 42)
	logger.Warn("failed to send order confirmation", "order_id", 42)

	if got := strings.Count(debugBuf.String(), "\n"); got != 2 {
		t.Fatalf("debug handler lines = %d, want %d", got, 2)
	}
	if got := warnBuf.String(); strings.Contains(got, "order placed") || !strings.Contains(got, "component=checkout_service") {
		t.Fatalf("warn handler output = %q", got)
	}
}

func TestMultiHandler_NoHandlers(t *testing.T) {
	t.Parallel()

	handler := MultiHandler(nil)
	if handler == nil {
		t.Fatalf("MultiHandler() returned nil")
	}
	slog.New(handler).Error("dropped")
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	requestLogger := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "abc")
	fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	ctx := WithLogger(context.Background(), requestLogger)
	FromContext(ctx, fallback).Info("cart updated")
	if !strings.Contains(buf.String(), "request_id=abc") {
		t.Fatalf("FromContext() did not return the request logger: %q", buf.String())
	}

	if got := FromContext(context.Background(), fallback); got != fallback {
		t.Fatalf("FromContext() = %p, want fallback %p", got, fallback)
	}
	if FromContext(context.Background(), nil) == nil {
		t.Fatalf("FromContext() returned nil logger")
	}
}

func TestSentryHandler_CapturesErrors(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		events []*sentry.Event
	)
	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, event)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	ctx := sentry.SetHubOnContext(context.Background(), sentry.NewHub(client, sentry.NewScope()))

	logger := slog.New(NewSentryHandler(ctx)).With("order_id", 7).WithGroup("req")
	logger.InfoContext(ctx, "order placed")
	logger.ErrorContext(ctx, "failed to reserve stock", "path", "/api/checkout")

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 1 {
		t.Fatalf("captured %d events, want 1", len(events))
	}
	if events[0].Message != "failed to reserve stock" {
		t.Fatalf("event message = %q, want %q", events[0].Message, "failed to reserve stock")
	}
	body, err := json.Marshal(events[0])
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(body), `"order_id"`) || strings.Contains(string(body), "req.order_id") {
		t.Fatalf("event = %s, want order_id outside the req group", body)
	}
}

func TestWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))
	ctx = With(ctx, "cart_id", "c-1")
	FromContext(ctx, nil).Info("item added")

	if !strings.Contains(buf.String(), "cart_id=c-1") {
		t.Fatalf("With() output = %q, want cart_id attr", buf.String())
	}

	bare := context.Background()
	if got := With(bare, "cart_id", "c-1"); got != bare {
		t.Fatalf("With() changed a context without a logger")
	}
}
