package analytics

import (
	"context"
	"testing"

	"github.com/goliatone/go-dataview/components/charts"
	"github.com/goliatone/go-dataview/components/dataview"
)

func TestRepositoriesDelegateToClient(t *testing.T) {
	mock := NewMockClient(MockData{
		Rows: map[string][]map[string]string{
			"admin.table.rooms": {{"id": "R101", "status": "Available"}},
		},
		Series: map[string][]charts.Series{
			charts.CodeRevenue: {{Name: "Revenue", Points: []charts.Point{{Label: "Jan", Value: 12000}}}},
		},
	})

	source := NewRecordSource(mock)
	rows, err := source.Records(context.Background(), dataview.SourceQuery{
		Table: dataview.TableDefinition{Code: "admin.table.rooms"},
	})
	if err != nil || len(rows) != 1 {
		t.Fatalf("record source returned %v, %v", rows, err)
	}
	rows[0]["id"] = "mutated"
	again, _ := source.Records(context.Background(), dataview.SourceQuery{
		Table: dataview.TableDefinition{Code: "admin.table.rooms"},
	})
	if again[0]["id"] != "R101" {
		t.Fatalf("expected fixtures to be cloned")
	}

	repo := NewSeriesRepository(mock)
	series, err := repo.Series(context.Background(), charts.CodeRevenue)
	if err != nil || len(series) != 1 {
		t.Fatalf("series repo returned %v, %v", series, err)
	}
	if _, err := repo.Series(context.Background(), "unknown"); err == nil {
		t.Fatalf("expected error for unknown chart")
	}
}

func TestRecordSourceFeedsService(t *testing.T) {
	mock := NewMockClient(MockData{})
	mock.SetRows("admin.table.rooms", []map[string]string{
		{"id": "R101", "type": "Standard", "status": "Available"},
		{"id": "R102", "type": "Deluxe", "status": "Occupied"},
	})
	reg := dataview.NewEmptyRegistry()
	for _, def := range dataview.DefaultTableDefinitions() {
		if def.Code == "admin.table.rooms" {
			if err := reg.RegisterTable(def); err != nil {
				t.Fatalf("register table: %v", err)
			}
		}
	}
	if err := reg.RegisterSource("admin.table.rooms", NewRecordSource(mock)); err != nil {
		t.Fatalf("register source: %v", err)
	}
	svc := dataview.NewService(dataview.Options{Tables: reg})
	payload, err := svc.OpenSession(context.Background(), dataview.OpenSessionRequest{
		TableCode: "admin.table.rooms",
		Filter:    &dataview.FilterState{Status: "occupied"},
	})
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if payload.View.MatchingCount != 1 || payload.View.Records[0].Key != "R102" {
		t.Fatalf("unexpected view: %#v", payload.View)
	}
}
