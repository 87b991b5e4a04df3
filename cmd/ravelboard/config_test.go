package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseWatchlistValid(t *testing.T) {
	data := []byte(`
[[symbol]]
name = "BTCUSDT"
threshold = 0.5

[[symbol]]
name = "ETHUSDT"
threshold = 0.8
`)
	symbols, err := parseWatchlist(data)
	if err != nil {
		t.Fatalf("parseWatchlist: %v", err)
	}
	if len(symbols) != 2 {
		t.Fatalf("expected 2 symbols, got %d", len(symbols))
	}
	if symbols[0].Name != "BTCUSDT" {
		t.Errorf("name = %q, want %q", symbols[0].Name, "BTCUSDT")
	}
	if symbols[0].Threshold != 0.5 {
		t.Errorf("threshold = %v, want 0.5", symbols[0].Threshold)
	}
}

func TestParseWatchlistRejectsEmpty(t *testing.T) {
	if _, err := parseWatchlist([]byte("")); err == nil {
		t.Error("empty watchlist accepted")
	}
	if _, err := parseWatchlist([]byte("[[symbol]]\nthreshold = 1.0\n")); err == nil {
		t.Error("nameless symbol accepted")
	}
	if _, err := parseWatchlist([]byte("[[symbol]]\nname = \"BTCUSDT\"\nthreshold = -1.0\n")); err == nil {
		t.Error("negative threshold accepted")
	}
}

func TestParseWatchlistDefault(t *testing.T) {
	symbols, err := parseWatchlist([]byte(defaultWatchlistTOML))
	if err != nil {
		t.Fatalf("default watchlist does not parse: %v", err)
	}
	if len(symbols) != 3 {
		t.Errorf("default watchlist has %d symbols, want 3", len(symbols))
	}
}

func TestLoadWatchlistCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "watchlist.toml")

	symbols, err := loadWatchlist(path)
	if err != nil {
		t.Fatalf("loadWatchlist: %v", err)
	}
	if len(symbols) != 3 {
		t.Errorf("got %d symbols, want 3", len(symbols))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default file not written: %v", err)
	}

	// Second load reads the file it just wrote.
	again, err := loadWatchlist(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(again) != len(symbols) {
		t.Errorf("reload got %d symbols, want %d", len(again), len(symbols))
	}
}

func TestSymbolHelpers(t *testing.T) {
	symbols := []symbolConfig{
		{Name: "BTCUSDT", Threshold: 0.5},
		{Name: "ETHUSDT", Threshold: 0.8},
	}

	names := symbolNames(symbols)
	if len(names) != 2 || names[0] != "BTCUSDT" || names[1] != "ETHUSDT" {
		t.Errorf("names = %v", names)
	}

	thresholds := alertThresholds(symbols)
	if thresholds["ETHUSDT"] != 0.8 {
		t.Errorf("thresholds = %v", thresholds)
	}
}
