package logging

import (
	"os"
	"path/filepath"
	"testing"

	"securecheck-api/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitLevels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := Init(config.LogConfig{Verbose: true}); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("GlobalLevel = %v, want debug", zerolog.GlobalLevel())
	}

	if err := Init(config.LogConfig{}); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("GlobalLevel = %v, want info", zerolog.GlobalLevel())
	}
}

func TestInitWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	if err := Init(config.LogConfig{Dir: dir}); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	log.Info().Msg("file sink check")

	data, err := os.ReadFile(filepath.Join(dir, "securecheck.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}
