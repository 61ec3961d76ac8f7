package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dataview/components/dataview"
)

type queryCmd struct {
	tableFlags `embed:""`

	Table    string `arg:"" help:"Table code (e.g. admin.table.rooms)."`
	Status   string `default:"All" help:"Status filter; All disables it."`
	Search   string `help:"Free-text search across every column."`
	Page     int    `default:"1" help:"Page to print; clamped into range."`
	PageSize int    `help:"Rows per page (defaults to the table's page size)."`
	Format   string `enum:"table,json,yaml" default:"table" help:"Output format (table, json, yaml)."`
}

func (cmd *queryCmd) Run(ctx context.Context) error {
	return cmd.run(ctx, os.Stdout)
}

func (cmd *queryCmd) run(ctx context.Context, out io.Writer) error {
	reg, closeFn, err := cmd.registry()
	if err != nil {
		return err
	}
	defer closeFn()

	svc := dataview.NewService(dataview.Options{Tables: reg})
	opened, err := svc.OpenSession(ctx, dataview.OpenSessionRequest{
		TableCode: cmd.Table,
		PageSize:  cmd.PageSize,
		Filter:    &dataview.FilterState{Status: cmd.Status, Query: cmd.Search},
	})
	if err != nil {
		return fmt.Errorf("tablectl: open %s: %w", cmd.Table, err)
	}
	if err := svc.SetPage(ctx, opened.SessionID, cmd.Page); err != nil {
		return err
	}
	payload, err := svc.View(ctx, opened.SessionID)
	if err != nil {
		return err
	}

	switch cmd.Format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(payload)
	}
	fmt.Fprintln(out, titleStyle.Render(payload.TableName))
	fmt.Fprint(out, renderTable(payload, -1))
	fmt.Fprintln(out, renderFooter(payload))
	return nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
