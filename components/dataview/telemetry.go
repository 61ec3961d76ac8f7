package dataview

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
)

// Telemetry records dataview events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// LogTelemetry writes events as `event key=value ...` lines.
type LogTelemetry struct {
	logger *log.Logger
}

// NewLogTelemetry wraps a logger; nil uses the standard logger.
func NewLogTelemetry(logger *log.Logger) *LogTelemetry {
	if logger == nil {
		logger = log.Default()
	}
	return &LogTelemetry{logger: logger}
}

// Record implements Telemetry.
func (t *LogTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(event)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, payload[k])
	}
	t.logger.Print(b.String())
}

// MultiTelemetry fans events out to every wrapped recorder.
type MultiTelemetry []Telemetry

// Record implements Telemetry.
func (m MultiTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	for _, t := range m {
		if t != nil {
			t.Record(ctx, event, payload)
		}
	}
}
