package web

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestCell(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"dui", "dui"},
		{int64(12345), "12,345"},
		{int64(2024), "2024"},
		{int64(-12345), "-12,345"},
		{7, "7"},
		{12.5, "12.5"},
		{3.0, "3"},
		{2024.0, "2024"},
		{123456.0, "123,456"},
		{true, "true"},
		{[]byte("raw"), "[114 97 119]"},
	}
	for _, tt := range tests {
		if got := Cell(tt.in); got != tt.want {
			t.Errorf("Cell(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCellSameAfterJSONRoundTrip(t *testing.T) {
	fresh := map[string]any{"year": int64(2024), "total_stops": int64(12345), "arrest_rate": 33.33, "hour": int64(0)}
	data, err := json.Marshal(fresh)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	for col, v := range fresh {
		if got, want := Cell(decoded[col]), Cell(v); got != want {
			t.Errorf("%s: decoded %q, fresh %q", col, got, want)
		}
	}
}

func TestComma(t *testing.T) {
	if got := Comma(1500000); got != "1,500,000" {
		t.Errorf("Comma() = %q", got)
	}
}

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("Templates() error: %v", err)
	}
	if tmpl.Lookup("dashboard.tmpl") == nil {
		t.Fatal("dashboard.tmpl not registered")
	}

	var buf bytes.Buffer
	data := map[string]any{
		"SummaryWarning": "store down",
		"Reports":        []string{"A", "B"},
		"Selected":       "B",
	}
	if err := tmpl.ExecuteTemplate(&buf, "dashboard.tmpl", data); err != nil {
		t.Fatalf("execute: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "store down") {
		t.Error("warning not rendered")
	}
	if !strings.Contains(out, `<option value="B" selected>`) {
		t.Error("selected report not marked")
	}
}
