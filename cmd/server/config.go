package main

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds server configuration. Environment variables are read first,
// then flags override them.
type Config struct {
	Addr          string   `env:"MENAGERIE_ADDR" envDefault:":8080"`
	Store         string   `env:"MENAGERIE_STORE" envDefault:"memory"`
	SQLitePath    string   `env:"MENAGERIE_SQLITE_PATH" envDefault:"menagerie.db"`
	Tables        string   `env:"MENAGERIE_TABLES"`
	Seed          int64    `env:"MENAGERIE_SEED"`
	LogLevel      string   `env:"MENAGERIE_LOG_LEVEL" envDefault:"info"`
	StartingCoins int      `env:"MENAGERIE_STARTING_COINS" envDefault:"1000"`
	StartingGems  int      `env:"MENAGERIE_STARTING_GEMS" envDefault:"50"`
	PortraitDir   string   `env:"MENAGERIE_PORTRAIT_DIR"`
	StaticDir     string   `env:"MENAGERIE_STATIC_DIR" envDefault:"static"`
	EventBiomes   []string `env:"MENAGERIE_EVENT_BIOMES" envSeparator:","`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "Record store: memory or sqlite")
	fs.StringVar(&cfg.SQLitePath, "sqlite", cfg.SQLitePath, "SQLite database file")
	fs.StringVar(&cfg.Tables, "tables", cfg.Tables, "YAML file overlaid on the built-in tables")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 seeds from crypto/rand)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.StringVar(&cfg.PortraitDir, "portraits", cfg.PortraitDir, "Directory of breed portraits")
	events := fs.String("event-biomes", strings.Join(cfg.EventBiomes, ","), "Comma separated event-only biomes that are open")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.EventBiomes = splitList(*events)
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
