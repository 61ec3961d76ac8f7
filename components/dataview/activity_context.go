package dataview

import (
	"context"
	"strings"
)

// ActivityContext identifies who triggered a row mutation. Commands attach it
// to the request context and the service reads it back when auditing.
type ActivityContext struct {
	ActorID  string
	UserID   string
	TenantID string
}

type activityKey struct{}

// ContextWithActivity attaches meta to ctx. Identifiers left blank in meta keep
// whatever an outer layer already attached, so a tenant set by middleware
// survives a command that only knows the user.
func ContextWithActivity(ctx context.Context, meta ActivityContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	merged := ActivityFromContext(ctx)
	if id := strings.TrimSpace(meta.ActorID); id != "" {
		merged.ActorID = id
	}
	if id := strings.TrimSpace(meta.UserID); id != "" {
		merged.UserID = id
	}
	if id := strings.TrimSpace(meta.TenantID); id != "" {
		merged.TenantID = id
	}
	return context.WithValue(ctx, activityKey{}, merged)
}

// ActivityFromContext returns the identifiers attached to ctx, if any.
func ActivityFromContext(ctx context.Context) ActivityContext {
	if ctx == nil {
		return ActivityContext{}
	}
	meta, _ := ctx.Value(activityKey{}).(ActivityContext)
	return meta
}

// forSession falls back to the session viewer when no user was attached.
func (a ActivityContext) forSession(s *Session) ActivityContext {
	if a.UserID == "" && s != nil {
		a.UserID = s.ViewerID
	}
	return a
}
