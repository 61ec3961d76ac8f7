package dataview

import "testing"

func TestMatchesStatus(t *testing.T) {
	rec := Record{Status: "Maintenance"}
	cases := map[string]bool{
		"":            true,
		"All":         true,
		"Maintenance": true,
		"main":        true,
		"MAIN":        true,
		"tenance":     true,
		"Occupied":    false,
	}
	for filter, want := range cases {
		if got := MatchesStatus(rec, filter); got != want {
			t.Fatalf("MatchesStatus(%q) = %v, want %v", filter, got, want)
		}
	}
	if MatchesStatus(Record{}, "main") {
		t.Fatalf("record without status should not match a status filter")
	}
}

func TestMatchesSearch(t *testing.T) {
	rec := NewRecord("R1", "Available",
		Field{Name: "room", Value: "Room 101"},
		Field{Name: "type", Value: "Deluxe"},
	)
	if !MatchesSearch(rec, "") {
		t.Fatalf("empty query should match")
	}
	if !MatchesSearch(rec, "deluxe") {
		t.Fatalf("expected case-insensitive field match")
	}
	if !MatchesSearch(rec, "101 Del") {
		t.Fatalf("expected match across joined fields")
	}
	if MatchesSearch(rec, "suite") {
		t.Fatalf("unexpected match")
	}
}

func TestIndexFoldOffsets(t *testing.T) {
	start, end := indexFold("Grüße aus KÖLN", "köln")
	if start < 0 {
		t.Fatalf("expected match")
	}
	if got := "Grüße aus KÖLN"[start:end]; got != "KÖLN" {
		t.Fatalf("unexpected slice %q", got)
	}
	if s, _ := indexFold("abc", "abcd"); s != -1 {
		t.Fatalf("expected no match when query longer than text")
	}
}
