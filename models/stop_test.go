package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStopDurations(t *testing.T) {
	s := &Snapshot{Records: []StopRecord{
		{StopDuration: "16-30 Min"},
		{StopDuration: "0-15 Min"},
		{StopDuration: ""},
		{StopDuration: "16-30 Min"},
		{StopDuration: "30+ Min"},
	}}

	want := []string{"16-30 Min", "0-15 Min", "30+ Min"}
	if diff := cmp.Diff(want, s.StopDurations()); diff != "" {
		t.Errorf("StopDurations() mismatch (-want +got):\n%s", diff)
	}
}

func TestStopDurationsEmpty(t *testing.T) {
	s := &Snapshot{}
	if got := s.StopDurations(); len(got) != 0 {
		t.Errorf("StopDurations() = %v, want empty", got)
	}
	if !s.Empty() {
		t.Error("Empty() = false, want true")
	}
}

func TestTablePage(t *testing.T) {
	tbl := &Table{Columns: []string{"n"}}
	for i := 0; i < 5; i++ {
		tbl.Rows = append(tbl.Rows, map[string]any{"n": i})
	}

	tests := []struct {
		name          string
		offset, limit int
		want          []int
	}{
		{"first page", 0, 2, []int{0, 1}},
		{"middle", 2, 2, []int{2, 3}},
		{"tail shorter than limit", 4, 2, []int{4}},
		{"offset past end", 9, 2, nil},
		{"negative offset clamps", -3, 1, []int{0}},
		{"negative limit returns rest", 3, -1, []int{3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := tbl.Page(tt.offset, tt.limit)
			var got []int
			for _, r := range page.Rows {
				got = append(got, r["n"].(int))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Page(%d, %d) mismatch (-want +got):\n%s", tt.offset, tt.limit, diff)
			}
		})
	}
}

func TestTableJSONKeepsNumberTypes(t *testing.T) {
	fresh := &Table{
		Columns: []string{"year", "violation", "total", "arrest_rate", "search_type"},
		Rows: []map[string]any{
			{"year": int64(2024), "violation": "dui", "total": int64(12345), "arrest_rate": 33.33, "search_type": nil},
		},
	}
	data, err := json.Marshal(fresh)
	if err != nil {
		t.Fatal(err)
	}
	var got Table
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if diff := cmp.Diff(fresh, &got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestTableJSONEmptyRows(t *testing.T) {
	var got Table
	if err := json.Unmarshal([]byte(`{"columns":["n"],"rows":[]}`), &got); err != nil {
		t.Fatal(err)
	}
	if got.Rows == nil || len(got.Rows) != 0 || len(got.Columns) != 1 {
		t.Errorf("got %+v, want one column and no rows", got)
	}
}
