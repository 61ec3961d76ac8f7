package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-dataview/components/bookings"
	bookingsqlite "github.com/goliatone/go-dataview/components/bookings/sqlite"
	"github.com/goliatone/go-dataview/components/charts"
	"github.com/goliatone/go-dataview/components/dataview"
	"github.com/goliatone/go-dataview/components/dataview/gorouter"
	"github.com/goliatone/go-dataview/components/dataview/httpapi"
	"github.com/goliatone/go-dataview/pkg/activity"
	"github.com/goliatone/go-dataview/pkg/analytics"
	"github.com/goliatone/go-dataview/pkg/goadmin"
	"github.com/goliatone/go-dataview/pkg/telemetry"
)

type app struct {
	cfg       config
	registry  *dataview.Registry
	service   *dataview.Service
	hook      *dataview.BroadcastHook
	executor  *httpapi.CommandExecutor
	desk      *bookings.Desk
	charts    *charts.Renderer
	admin     *goadmin.Admin
	telemetry dataview.Telemetry
	closers   []func() error
}

func buildApp(ctx context.Context, cfg config) (*app, error) {
	a := &app{cfg: cfg, registry: dataview.NewRegistry()}
	if cfg.Manifest != "" {
		if _, err := a.registry.LoadManifestFile(cfg.Manifest); err != nil {
			return nil, fmt.Errorf("load manifest: %w", err)
		}
	}

	ledger, err := a.openLedger()
	if err != nil {
		return nil, err
	}
	a.desk = bookings.NewDesk(ledger)
	if cfg.SeedDemo {
		if err := seedBookings(ctx, a.desk); err != nil {
			return nil, fmt.Errorf("seed bookings: %w", err)
		}
	}
	if err := a.registry.RegisterSource(bookings.TableCode, bookings.NewRecordSource(ledger)); err != nil {
		return nil, err
	}

	var chartRepo charts.SeriesRepository = charts.NewStaticRepository(charts.DefaultAdminCharts()...)
	if cfg.AnalyticsURL != "" {
		client, err := analytics.NewHTTPClient(analytics.HTTPConfig{BaseURL: cfg.AnalyticsURL, APIKey: cfg.AnalyticsKey})
		if err != nil {
			return nil, err
		}
		source := analytics.NewRecordSource(client)
		for _, def := range a.registry.Tables() {
			if def.Code == bookings.TableCode {
				continue
			}
			if err := a.registry.RegisterSource(def.Code, source); err != nil {
				return nil, err
			}
		}
		chartRepo = analytics.NewSeriesRepository(client)
	}
	a.charts = charts.NewRenderer(charts.WithRepository(chartRepo))

	a.telemetry = dataview.MultiTelemetry{
		dataview.NewLogTelemetry(log.Default()),
		telemetry.NewTracer(nil),
	}
	a.hook = dataview.NewBroadcastHook()
	emitter := activity.NewEmitter(activity.Hooks{activity.HookFunc(logActivity)}, activity.Config{Enabled: true})
	a.service = dataview.NewService(dataview.Options{
		Tables:          a.registry,
		RefreshHook:     a.hook,
		Telemetry:       a.telemetry,
		Activity:        emitter,
		DefaultPageSize: cfg.PageSize,
	})
	a.executor = httpapi.NewCommandExecutor(a.service, a.telemetry)

	a.admin, err = goadmin.New(goadmin.Config{
		EnableTables: true,
		Service:      a.service,
		BasePath:     cfg.BasePath,
		MenuBuilder:  logMenuBuilder{},
		Icons: map[string]string{
			bookings.TableCode:   "calendar",
			"admin.table.rooms":  "bed",
			"admin.table.guests": "users",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("goadmin init: %w", err)
	}
	if err := a.admin.Bootstrap(ctx); err != nil {
		return nil, fmt.Errorf("bootstrap menu: %w", err)
	}
	return a, nil
}

func (a *app) openLedger() (bookings.Ledger, error) {
	if a.cfg.DBPath == "" {
		return bookings.NewMemoryLedger(), nil
	}
	store, err := bookingsqlite.Open(a.cfg.DBPath)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store.Close)
	return store, nil
}

func (a *app) Close() error {
	var errs error
	for _, closeFn := range a.closers {
		errs = errors.Join(errs, closeFn())
	}
	return errs
}

// mount registers table, chart and booking routes.
func (a *app) mount(r router.Router[*fiber.App]) error {
	renderer, err := dataview.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("template renderer: %w", err)
	}
	controller := dataview.NewController(dataview.ControllerOptions{
		Service:  a.service,
		Renderer: renderer,
	})
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     r,
		Controller: controller,
		API:        a.executor,
		Broadcast:  a.hook,
		BasePath:   a.cfg.BasePath,
		ViewerResolver: func(ctx router.Context) dataview.ViewerContext {
			return dataview.ViewerContext{UserID: "admin@apexstay.com", Roles: []string{"admin"}, Locale: "en"}
		},
	}); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}

	group := r.Group(a.cfg.BasePath)
	group.Get("/charts/:code", router.WrapHandler(a.handleChart))
	group.Post("/bookings", router.WrapHandler(a.handleBook))
	group.Get("/bookings/quote", router.WrapHandler(a.handleQuote))
	return nil
}

func (a *app) handleChart(ctx router.Context) error {
	code := ctx.Param("code")
	for _, spec := range charts.DefaultAdminCharts() {
		if spec.Code != code {
			continue
		}
		html, err := a.charts.RenderCode(ctx.Context(), spec)
		if err != nil {
			return ctx.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send([]byte(html))
	}
	return ctx.JSON(http.StatusNotFound, map[string]string{"error": "chart not found: " + code})
}
