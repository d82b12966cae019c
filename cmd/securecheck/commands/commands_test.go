package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// useSQLite points the commands at a fresh database file.
func useSQLite(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "ledger.db"))
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("CATALOG_PATH", "")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestReportsList(t *testing.T) {
	useSQLite(t)
	out, err := run(t, "reports", "list")
	if err != nil {
		t.Fatalf("reports list: %v", err)
	}
	if !strings.Contains(out, "Top 10 vehicle numbers involved in drug-related stops") {
		t.Errorf("first report missing:\n%s", out)
	}
	if !strings.Contains(out, "20") {
		t.Errorf("expected 20 numbered reports:\n%s", out)
	}
}

func TestSeedThenRun(t *testing.T) {
	useSQLite(t)

	out, err := run(t, "seed", "--count", "120", "--batch", "50", "--seed", "3")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out, "inserted 120 synthetic stops") {
		t.Errorf("seed output = %q", out)
	}

	out, err = run(t, "reports", "run", "Top 5 Violations with Highest Arrest Rates")
	if err != nil {
		t.Fatalf("reports run: %v", err)
	}
	if !strings.Contains(out, "ARRESTS") || !strings.Contains(out, "speeding") {
		t.Errorf("report table missing:\n%s", out)
	}

	out, err = run(t, "reports", "run", "--limit", "1", "What is the gender distribution of drivers stopped in each country?")
	if err != nil {
		t.Fatalf("reports run --limit: %v", err)
	}
	if !strings.Contains(out, "rows shown") {
		t.Errorf("truncation note missing:\n%s", out)
	}

	out, err = run(t, "predict", "--gender", "female", "--age", "30", "--duration", "0-15 Min",
		"--country", "india", "--date", "2024-05-01", "--time", "09:05:00")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !strings.Contains(out, "A 30-year-old female driver in india was stopped at 09:05 AM on 2024-05-01.") {
		t.Errorf("summary missing:\n%s", out)
	}
	if !strings.Contains(out, "Predicted Violation:") {
		t.Errorf("prediction missing:\n%s", out)
	}
}

func TestReportsRunErrors(t *testing.T) {
	useSQLite(t)
	if _, err := run(t, "seed", "--count", "5", "--seed", "1"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := run(t, "reports", "run", "no such report"); err == nil || !strings.Contains(err.Error(), "unknown report") {
		t.Errorf("unknown report error = %v", err)
	}
	if _, err := run(t, "reports", "run"); err == nil {
		t.Error("expected error without a report name")
	}
}

func TestPredictValidation(t *testing.T) {
	useSQLite(t)
	tests := []struct {
		name string
		args []string
	}{
		{"missing required flags", []string{"predict", "--gender", "male"}},
		{"bad gender", []string{"predict", "--gender", "x", "--age", "30", "--duration", "0-15 Min"}},
		{"age too high", []string{"predict", "--gender", "male", "--age", "101", "--duration", "0-15 Min"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}
}

func TestSeedRejectsNonPositiveCount(t *testing.T) {
	useSQLite(t)
	if _, err := run(t, "seed", "--count", "0"); err == nil {
		t.Error("expected error for --count 0")
	}
}
