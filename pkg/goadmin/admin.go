package goadmin

import (
	"context"
	"errors"
	"strings"

	activitypkg "github.com/goliatone/go-dataview/pkg/activity"
	dataviewpkg "github.com/goliatone/go-dataview/pkg/dataview"
)

// MenuBuilder ensures table entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures table link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the table service and feature flags into an admin shell.
type Config struct {
	EnableTables   bool
	MenuCode       string
	MenuBuilder    MenuBuilder
	Service        *dataviewpkg.Service
	BasePath       string
	Icons          map[string]string
	ActivityHooks  activitypkg.Hooks
	ActivityConfig activitypkg.Config
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg      Config
	activity *activitypkg.Emitter
}

// New creates an Admin helper that can seed table menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableTables && cfg.Service == nil {
		return nil, errors.New("goadmin: dataview service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.BasePath == "" {
		cfg.BasePath = "/admin"
	}
	return &Admin{
		cfg:      cfg,
		activity: activitypkg.NewEmitter(cfg.ActivityHooks, cfg.ActivityConfig),
	}, nil
}

// Tables exposes the configured service when enabled.
func (a *Admin) Tables() *dataviewpkg.Service {
	if !a.cfg.EnableTables {
		return nil
	}
	return a.cfg.Service
}

// Activity returns the emitter to pass as the service's ActivityEmitter.
func (a *Admin) Activity() *activitypkg.Emitter {
	return a.activity
}

// MenuItems lists one entry per registered table, ordered by code.
func (a *Admin) MenuItems() []MenuItem {
	if !a.cfg.EnableTables {
		return nil
	}
	defs := a.cfg.Service.Tables().Tables()
	items := make([]MenuItem, len(defs))
	for i, def := range defs {
		icon := a.cfg.Icons[def.Code]
		if icon == "" {
			icon = "table"
		}
		items[i] = MenuItem{
			Label:    def.Name,
			Route:    strings.TrimRight(a.cfg.BasePath, "/") + "/tables/" + def.Code,
			Icon:     icon,
			Position: i + 1,
		}
	}
	return items
}

// Bootstrap seeds menu entries when table support is enabled.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableTables || a.cfg.MenuBuilder == nil {
		return nil
	}
	for _, item := range a.MenuItems() {
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, item); err != nil {
			return err
		}
	}
	return nil
}
