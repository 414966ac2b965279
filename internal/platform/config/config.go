// Package config loads server and simulation settings through viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abstogo/SpaceTycoon/internal/domain/calendar"
	"github.com/abstogo/SpaceTycoon/internal/engine"
)

// FileName is looked up in the config directory. It is optional.
const FileName = "tycoon.cfg.json"

// EnvPrefix prefixes environment overrides, e.g. TYCOON_HTTP_ADDR.
const EnvPrefix = "TYCOON"

// GameConfig holds the settings of a new game.
type GameConfig struct {
	StartingCredits  int           `json:"startingCredits"`
	StartLocation    string        `json:"startLocation"`
	StartYear        int           `json:"startYear"`
	MaxCrew          int           `json:"maxCrew"`
	DegradationRate  float64       `json:"degradationRate"`
	DayLength        time.Duration `json:"dayLength"`
	TravelDays       int           `json:"travelDays"`
	Seed             uint64        `json:"seed"`
	CatalogPath      string        `json:"catalogPath"`
	AutosaveInterval time.Duration `json:"autosaveInterval"`
}

// WSConfig holds WebSocket buffer sizes and limits.
type WSConfig struct {
	SendBuffer      int `json:"sendBuffer"`
	BroadcastBuffer int `json:"broadcastBuffer"`
	MaxClients      int `json:"maxClients"`
}

// Config is the resolved configuration.
type Config struct {
	LogLevel  string     `json:"logLevel"`
	HTTPAddr  string     `json:"httpAddr"`
	DBPath    string     `json:"dbPath"`
	CacheSize int        `json:"cacheSize"`
	Game      GameConfig `json:"game"`
	WS        WSConfig   `json:"ws"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("http.addr", ":8080")
	viper.SetDefault("db.path", "tycoon.db")
	viper.SetDefault("cache.size", 64)

	viper.SetDefault("game.startingCredits", 10000)
	viper.SetDefault("game.startLocation", "Port Alpha")
	viper.SetDefault("game.startYear", 1105)
	viper.SetDefault("game.maxCrew", 6)
	viper.SetDefault("game.degradationRate", 0.1)
	viper.SetDefault("game.dayLength", "1s")
	viper.SetDefault("game.travelDays", 3)
	viper.SetDefault("game.seed", 0)
	viper.SetDefault("game.catalogPath", "")
	viper.SetDefault("game.autosaveInterval", "30s")

	viper.SetDefault("ws.sendBuffer", 64)
	viper.SetDefault("ws.broadcastBuffer", 256)
	viper.SetDefault("ws.maxClients", 200)
}

// Load reads configuration from the JSON file in configDir, the environment
// and any bound flags. A missing file is not an error.
func Load(configDir string) (*Config, error) {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		LogLevel:  viper.GetString("logLevel"),
		HTTPAddr:  viper.GetString("http.addr"),
		DBPath:    viper.GetString("db.path"),
		CacheSize: viper.GetInt("cache.size"),
		Game: GameConfig{
			StartingCredits:  viper.GetInt("game.startingCredits"),
			StartLocation:    viper.GetString("game.startLocation"),
			StartYear:        viper.GetInt("game.startYear"),
			MaxCrew:          viper.GetInt("game.maxCrew"),
			DegradationRate:  viper.GetFloat64("game.degradationRate"),
			DayLength:        viper.GetDuration("game.dayLength"),
			TravelDays:       viper.GetInt("game.travelDays"),
			Seed:             viper.GetUint64("game.seed"),
			CatalogPath:      viper.GetString("game.catalogPath"),
			AutosaveInterval: viper.GetDuration("game.autosaveInterval"),
		},
		WS: WSConfig{
			SendBuffer:      viper.GetInt("ws.sendBuffer"),
			BroadcastBuffer: viper.GetInt("ws.broadcastBuffer"),
			MaxClients:      viper.GetInt("ws.maxClients"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Game.StartingCredits < 0:
		return fmt.Errorf("game.startingCredits must not be negative, got %d", c.Game.StartingCredits)
	case c.Game.MaxCrew <= 0:
		return fmt.Errorf("game.maxCrew must be positive, got %d", c.Game.MaxCrew)
	case c.Game.DayLength <= 0:
		return fmt.Errorf("game.dayLength must be positive, got %s", c.Game.DayLength)
	case c.Game.TravelDays < 0:
		return fmt.Errorf("game.travelDays must not be negative, got %d", c.Game.TravelDays)
	case c.Game.DegradationRate < 0:
		return fmt.Errorf("game.degradationRate must not be negative, got %v", c.Game.DegradationRate)
	}
	return nil
}

// BindFlags registers command-line overrides on fs and binds them to viper.
// Call it before Load and parse fs before reading values.
func BindFlags(fs *pflag.FlagSet) error {
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("addr", ":8080", "HTTP listen address")
	fs.String("db", "tycoon.db", "SQLite database path")
	fs.Uint64("seed", 0, "random seed (0 picks one)")
	fs.String("catalog", "", "event catalog YAML (empty uses the built-in one)")
	fs.Duration("day-length", time.Second, "wall-clock length of a game day")

	bindings := map[string]string{
		"logLevel":         "log-level",
		"http.addr":        "addr",
		"db.path":          "db",
		"game.seed":        "seed",
		"game.catalogPath": "catalog",
		"game.dayLength":   "day-length",
	}
	for key, name := range bindings {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// GameOptions converts the game section into engine options.
func (c *Config) GameOptions() engine.Options {
	opts := engine.DefaultOptions()
	opts.StartingCredits = c.Game.StartingCredits
	opts.StartLocation = c.Game.StartLocation
	opts.StartDate = calendar.New(c.Game.StartYear)
	opts.MaxCrew = c.Game.MaxCrew
	opts.DegradationRate = c.Game.DegradationRate
	opts.TravelDays = c.Game.TravelDays
	opts.DayLength = c.Game.DayLength
	return opts
}
