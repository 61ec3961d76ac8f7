package dataview

import (
	"context"
	"testing"
)

func TestContextWithActivityMergesLayers(t *testing.T) {
	ctx := ContextWithActivity(context.Background(), ActivityContext{TenantID: "apex-stay"})
	ctx = ContextWithActivity(ctx, ActivityContext{UserID: " u-7 ", ActorID: "a-1"})

	got := ActivityFromContext(ctx)
	want := ActivityContext{ActorID: "a-1", UserID: "u-7", TenantID: "apex-stay"}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestActivityFromContextWithoutValue(t *testing.T) {
	if got := ActivityFromContext(context.Background()); got != (ActivityContext{}) {
		t.Fatalf("expected empty context, got %+v", got)
	}
}

func TestActivityForSessionFallsBackToViewer(t *testing.T) {
	session := NewSession("s1", "admin.table.rooms", "viewer-1", nil)
	if got := (ActivityContext{}).forSession(session); got.UserID != "viewer-1" {
		t.Fatalf("expected viewer fallback, got %+v", got)
	}
	if got := (ActivityContext{UserID: "u-2"}).forSession(session); got.UserID != "u-2" {
		t.Fatalf("explicit user should win, got %+v", got)
	}
}
