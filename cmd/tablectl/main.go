package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/goliatone/go-dataview/components/bookings"
	bookingsqlite "github.com/goliatone/go-dataview/components/bookings/sqlite"
	"github.com/goliatone/go-dataview/components/dataview"
)

type cli struct {
	Query    queryCmd    `cmd:"" help:"Print one page of a table with filters applied."`
	Browse   browseCmd   `cmd:"" help:"Browse a table interactively with live search."`
	Scaffold scaffoldCmd `cmd:"" help:"Add a table definition to a manifest."`
	Book     bookCmd     `cmd:"" help:"Record a room, pool or karting booking in a ledger."`
}

// tableFlags selects where table definitions and rows come from.
type tableFlags struct {
	Manifest string `type:"path" help:"Optional table manifest (YAML) to load on top of the built-in tables."`
	DB       string `type:"path" help:"Optional SQLite booking ledger backing admin.table.bookings."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Admin table utility for go-dataview."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

// registry builds the table registry; the returned close func releases the
// ledger when one was opened.
func (f tableFlags) registry() (*dataview.Registry, func() error, error) {
	noop := func() error { return nil }
	reg := dataview.NewRegistry()
	if f.Manifest != "" {
		if _, err := reg.LoadManifestFile(f.Manifest); err != nil {
			return nil, noop, err
		}
	}
	if f.DB == "" {
		return reg, noop, nil
	}
	store, err := bookingsqlite.Open(f.DB)
	if err != nil {
		return nil, noop, fmt.Errorf("tablectl: open ledger: %w", err)
	}
	if err := reg.RegisterSource(bookings.TableCode, bookings.NewRecordSource(store)); err != nil {
		_ = store.Close()
		return nil, noop, err
	}
	return reg, store.Close, nil
}
