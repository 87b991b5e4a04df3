package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// appConfig is the process configuration. Values come from
// ~/.config/ravelboard/config.toml and RAVELBOARD_ env overrides.
type appConfig struct {
	Endpoint    string
	Watchlist   string
	Journal     journalConfig
	Diagnostics diagnosticsConfig
}

// journalConfig holds the durable commit journal settings.
type journalConfig struct {
	Path string
}

// diagnosticsConfig holds the in-memory ring size and the optional
// plain-text change log path.
type diagnosticsConfig struct {
	Ring int
	Log  string
}

// loadConfig reads configuration from file and env. Env var overrides use
// prefix RAVELBOARD_.
func loadConfig() (appConfig, error) {
	v := viper.New()

	v.SetDefault("endpoint", "wss://stream.binance.com:9443")
	v.SetDefault("watchlist", filepath.Join(configDir(), "watchlist.toml"))
	v.SetDefault("journal.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "ravelboard", "commits.db"))
	v.SetDefault("diagnostics.ring", 256)
	v.SetDefault("diagnostics.log", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("RAVELBOARD_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("RAVELBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c appConfig
	if err := v.Unmarshal(&c); err != nil {
		return appConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "ravelboard")
}

// symbolConfig is one [[symbol]] block of the watchlist file.
type symbolConfig struct {
	Name      string  `toml:"name"`
	Threshold float64 `toml:"threshold"` // percent move that raises an alert
}

// watchlistFile is the top-level TOML structure.
type watchlistFile struct {
	Symbol []symbolConfig `toml:"symbol"`
}

const defaultWatchlistTOML = `# ravelboard watchlist
# Add [[symbol]] blocks to track more markets.

[[symbol]]
name = "BTCUSDT"
threshold = 0.5

[[symbol]]
name = "ETHUSDT"
threshold = 0.8

[[symbol]]
name = "SOLUSDT"
threshold = 1.0
`

// loadWatchlist loads the watchlist definitions from path. A missing file is
// created with the default symbols first.
func loadWatchlist(path string) ([]symbolConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0755); mkErr != nil {
			return nil, fmt.Errorf("create watchlist dir: %w", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(defaultWatchlistTOML), 0644); wErr != nil {
			return nil, fmt.Errorf("write default watchlist: %w", wErr)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	return parseWatchlist(data)
}

// parseWatchlist parses TOML bytes into symbol definitions.
func parseWatchlist(data []byte) ([]symbolConfig, error) {
	var file watchlistFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse watchlist.toml: %w", err)
	}
	if len(file.Symbol) == 0 {
		return nil, fmt.Errorf("no symbols defined in watchlist")
	}
	for i, s := range file.Symbol {
		if s.Name == "" {
			return nil, fmt.Errorf("symbol[%d]: name is required", i)
		}
		if s.Threshold < 0 {
			return nil, fmt.Errorf("symbol[%d]: threshold must not be negative", i)
		}
	}
	return file.Symbol, nil
}

// symbolNames returns the watchlist names in file order.
func symbolNames(symbols []symbolConfig) []string {
	names := make([]string, 0, len(symbols))
	for _, s := range symbols {
		names = append(names, s.Name)
	}
	return names
}

// alertThresholds maps symbol name to its alert threshold.
func alertThresholds(symbols []symbolConfig) map[string]float64 {
	out := make(map[string]float64, len(symbols))
	for _, s := range symbols {
		out[s.Name] = s.Threshold
	}
	return out
}
