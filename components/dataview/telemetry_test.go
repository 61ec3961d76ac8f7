package dataview

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"
)

func TestLogTelemetrySortsKeys(t *testing.T) {
	var buf bytes.Buffer
	tel := NewLogTelemetry(log.New(&buf, "", 0))
	tel.Record(context.Background(), "dataview.session.filter", map[string]any{"b": 2, "a": "x"})
	if got := strings.TrimSpace(buf.String()); got != "dataview.session.filter a=x b=2" {
		t.Fatalf("unexpected log line %q", got)
	}
}

func TestMultiTelemetryFansOut(t *testing.T) {
	first := &recordingTelemetry{}
	second := &recordingTelemetry{}
	MultiTelemetry{first, nil, second}.Record(context.Background(), "evt", nil)
	if len(first.events) != 1 || len(second.events) != 1 {
		t.Fatalf("expected both recorders to receive the event")
	}
}

type recordingNotificationsClient struct {
	channel string
	note    Notification
}

func (r *recordingNotificationsClient) PublishNotification(_ context.Context, channel string, n Notification) error {
	r.channel = channel
	r.note = n
	return nil
}

func TestNotificationsHookDefaultsSeverity(t *testing.T) {
	client := &recordingNotificationsClient{}
	hook := &NotificationsHook{Client: client, Channel: "toasts"}
	if err := hook.Notify(context.Background(), Notification{Message: "hi"}); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if client.channel != "toasts" || client.note.Severity != SeverityInfo {
		t.Fatalf("unexpected publish %s %#v", client.channel, client.note)
	}
	var nilHook *NotificationsHook
	if err := nilHook.Notify(context.Background(), Notification{}); err != nil {
		t.Fatalf("nil hook should be a no-op")
	}
}
