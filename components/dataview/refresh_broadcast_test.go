package dataview

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestBroadcastHookSubscribe(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	defer cancel()
	event := ViewEvent{SessionID: "s1", TableCode: "admin.table.rooms", Reason: "filter"}
	if err := hook.ViewUpdated(context.Background(), event); err != nil {
		t.Fatalf("ViewUpdated returned error: %v", err)
	}
	select {
	case e := <-ch:
		if e.TableCode != event.TableCode {
			t.Fatalf("expected table %s, got %s", event.TableCode, e.TableCode)
		}
	default:
		t.Fatalf("expected event to be delivered")
	}
}

func TestBroadcastHookCancelClosesChannel(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	if hook.Subscribers() != 1 {
		t.Fatalf("expected one subscriber")
	}
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel")
	}
	if hook.Subscribers() != 0 {
		t.Fatalf("expected no subscribers")
	}
}

func TestBroadcastHookDropsWhenFull(t *testing.T) {
	hook := NewBroadcastHook()
	_, cancel := hook.Subscribe()
	defer cancel()
	for i := 0; i < 20; i++ {
		if err := hook.ViewUpdated(context.Background(), ViewEvent{Reason: "page"}); err != nil {
			t.Fatalf("ViewUpdated returned error: %v", err)
		}
	}
}

func waitForSubscribers(t *testing.T, hook *BroadcastHook, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hook.Subscribers() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d subscribers, got %d", n, hook.Subscribers())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastHookServeWebSocketFiltersBySession(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeWebSocket))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=s1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitForSubscribers(t, hook, 1)

	_ = hook.ViewUpdated(context.Background(), ViewEvent{SessionID: "s2", Reason: "page"})
	_ = hook.ViewUpdated(context.Background(), ViewEvent{SessionID: "s1", Reason: "search", MatchingCount: 3})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got ViewEvent
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.SessionID != "s1" || got.Reason != "search" || got.MatchingCount != 3 {
		t.Fatalf("unexpected event %#v", got)
	}
}

func TestBroadcastHookServeSSEWritesNamedEvents(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeSSE))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"?session=s1", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}
	waitForSubscribers(t, hook, 1)

	_ = hook.ViewUpdated(context.Background(), ViewEvent{SessionID: "other", Reason: "page"})
	_ = hook.ViewUpdated(context.Background(), ViewEvent{SessionID: "s1", Reason: "remove", RowKey: "R2"})

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("read event line: %v", err)
	}
	if line != "event: remove\n" {
		t.Fatalf("unexpected event line %q", line)
	}
	data, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("read data line: %v", err)
	}
	var got ViewEvent
	if err := json.Unmarshal([]byte(strings.TrimPrefix(data, "data: ")), &got); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if got.RowKey != "R2" {
		t.Fatalf("unexpected event %#v", got)
	}
}

type closedClientWriter struct {
	header http.Header
	writes int
}

func (w *closedClientWriter) Header() http.Header { return w.header }

func (w *closedClientWriter) WriteHeader(int) {}

func (w *closedClientWriter) Write([]byte) (int, error) {
	w.writes++
	return 0, errors.New("client gone")
}

func TestBroadcastHookServeSSEStopsOnWriteError(t *testing.T) {
	hook := NewBroadcastHook()
	w := &closedClientWriter{header: http.Header{}}
	req := httptest.NewRequest(http.MethodGet, "/events", nil)

	done := make(chan struct{})
	go func() {
		hook.ServeSSE(w, req)
		close(done)
	}()
	waitForSubscribers(t, hook, 1)

	_ = hook.ViewUpdated(context.Background(), ViewEvent{SessionID: "s1", Reason: "filter"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected ServeSSE to return after a failed write")
	}
	if w.writes != 1 {
		t.Fatalf("expected a single failed write, got %d", w.writes)
	}
	waitForSubscribers(t, hook, 0)
}
