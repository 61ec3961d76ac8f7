package gorouter

import (
	"testing"

	"github.com/goliatone/go-dataview/components/dataview"
)

func TestRegisterValidatesConfig(t *testing.T) {
	if err := Register(Config[struct{}]{}); err == nil {
		t.Fatalf("expected error when router/controller missing")
	}
}

func TestDefaultRouteConfig(t *testing.T) {
	routes := defaultRouteConfig(RouteConfig{Search: "/s/:id/q"})
	if routes.Search != "/s/:id/q" {
		t.Fatalf("custom route overwritten: %s", routes.Search)
	}
	if routes.HTML != "/tables/:code" || routes.Row != "/sessions/:id/rows/:key" {
		t.Fatalf("unexpected defaults %+v", routes)
	}
	if routes.WebSocket != "/tables/ws" {
		t.Fatalf("unexpected websocket path %s", routes.WebSocket)
	}
}

func TestParseAcceptLanguage(t *testing.T) {
	cases := map[string]string{
		"en-US,en;q=0.9": "en-us",
		" ;q=0.1, fr":    "fr",
		"":               "",
	}
	for header, want := range cases {
		if got := parseAcceptLanguage(header); got != want {
			t.Fatalf("parseAcceptLanguage(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestRegisterRequiresController(t *testing.T) {
	cfg := Config[struct{}]{Controller: dataview.NewController(dataview.ControllerOptions{})}
	if err := Register(cfg); err == nil {
		t.Fatalf("expected error when router missing")
	}
}
