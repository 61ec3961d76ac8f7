package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-dataview/components/dataview"
	"github.com/goliatone/go-dataview/pkg/activity"
	"github.com/goliatone/go-dataview/pkg/goadmin"
	"github.com/goliatone/go-dataview/pkg/telemetry"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := run(context.Background(), cfg, serveFiber); err != nil {
		log.Fatal(err)
	}
}

// run owns every resource the server opens; they are released before it
// returns, whether serving ended cleanly or not.
func run(ctx context.Context, cfg config, serve func(a *app) error) (err error) {
	shutdown, err := telemetry.Setup(ctx, "dataview-adminserver", telemetry.Config{
		Enabled:  cfg.OTelEnabled,
		Endpoint: cfg.OTelEndpoint,
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		if shutdownErr := shutdown(context.Background()); shutdownErr != nil {
			log.Printf("telemetry shutdown: %v", shutdownErr)
		}
	}()

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer func() {
		err = errors.Join(err, a.Close())
	}()
	return serve(a)
}

func serveFiber(a *app) error {
	server := router.NewFiberAdapter()
	if err := a.mount(server.Router()); err != nil {
		return fmt.Errorf("mount: %w", err)
	}

	if a.cfg.EventsAddr != "" {
		go func() {
			log.Printf("event stream ready: http://localhost%s/events", a.cfg.EventsAddr)
			if err := http.ListenAndServe(a.cfg.EventsAddr, a.eventsMux()); err != nil {
				log.Printf("events server: %v", err)
			}
		}()
	}

	for _, item := range a.admin.MenuItems() {
		log.Printf("table ready: %s -> http://localhost%s%s", item.Label, a.cfg.Addr, item.Route)
	}
	log.Printf("API endpoints: POST %s, POST %s, WebSocket %s",
		a.cfg.BasePath+"/tables/:code/sessions",
		a.cfg.BasePath+"/sessions/:id/search",
		a.cfg.BasePath+"/tables/ws",
	)
	if err := server.Serve(a.cfg.Addr); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

type logMenuBuilder struct{}

func (logMenuBuilder) EnsureMenuItem(_ context.Context, menu string, item goadmin.MenuItem) error {
	log.Printf("menu %s: %s (%s)", menu, item.Label, item.Route)
	return nil
}

func logActivity(_ context.Context, evt activity.Event) error {
	log.Printf("activity %s %s/%s by %s", evt.Verb, evt.ObjectType, evt.ObjectID, evt.UserID)
	return nil
}

var _ dataview.ActivityEmitter = (*activity.Emitter)(nil)
