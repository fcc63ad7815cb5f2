package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const (
	OrderStartTime = "startTime"
	OrderUpdated   = "updated"

	TokenStoreFile   = "file"
	TokenStoreSQLite = "sqlite"

	envPrefix = "GCAL_"
)

type Config struct {
	CalendarID    string `koanf:"calendarid"`
	ListOrder     string `koanf:"listorder"`
	EventDuration int    `koanf:"eventduration"`
	Timezone      string `koanf:"timezone"`
	Credentials   string `koanf:"credentials"`
	List          List   `koanf:"list"`
	Token         Token  `koanf:"token"`
	Bulk          Bulk   `koanf:"bulk"`
}

type List struct {
	DateTimeFormat string `koanf:"datetimeformat"`
	DateFormat     string `koanf:"dateformat"`
}

type Token struct {
	Store   string `koanf:"store"`
	Path    string `koanf:"path"`
	Account string `koanf:"account"`
}

type Bulk struct {
	Concurrency  int      `koanf:"concurrency"`
	Retries      int      `koanf:"retries"`
	ResultFields []string `koanf:"resultfields"`
}

// Dir is where credentials, tokens and the default config file live.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".credentials"
	}
	return filepath.Join(home, ".credentials")
}

// DefaultPath is read when no -C flag is given; it may be absent.
func DefaultPath() string {
	return filepath.Join(Dir(), "gcal.yaml")
}

func Default() Config {
	dir := Dir()
	return Config{
		CalendarID:    "primary",
		ListOrder:     OrderStartTime,
		EventDuration: 60,
		Credentials:   filepath.Join(dir, "client_secret.json"),
		List: List{
			DateTimeFormat: "2006-01-02 15:04",
			DateFormat:     "2006-01-02 -----",
		},
		Token: Token{
			Store:   TokenStoreFile,
			Path:    filepath.Join(dir, "calendar-api-quickstart.json"),
			Account: "default",
		},
		Bulk: Bulk{
			Concurrency:  5,
			Retries:      3,
			ResultFields: []string{"id", "summary", "htmlLink"},
		},
	}
}

// Load layers defaults, the file at path and GCAL_* environment variables,
// in that order. A missing file is only an error when required is set.
func Load(path string, required bool) (Config, error) {
	var k = koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		log.Errorf("error loading config defaults: %v", err)
		return Config{}, err
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return Config{}, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			if errors.Is(err, os.ErrNotExist) && !required {
				log.Debugf("config file not found at %s, using defaults and environment variables", path)
			} else {
				return Config{}, fmt.Errorf("config: load %s: %w", path, err)
			}
		} else {
			log.Debugf("loaded configuration from file: %s", path)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			if k == "bulk.resultfields" {
				return k, strings.Split(v, ",")
			}
			return k, v
		},
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("config: load environment: %w", err)
	}

	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	case ".toml":
		return TOML(), nil
	default:
		return nil, fmt.Errorf("config: unsupported file type %q", filepath.Ext(path))
	}
}

func (c Config) Validate() error {
	switch c.ListOrder {
	case OrderStartTime, OrderUpdated:
	default:
		return fmt.Errorf("config: listorder must be %q or %q, got %q", OrderStartTime, OrderUpdated, c.ListOrder)
	}
	if c.EventDuration <= 0 {
		return fmt.Errorf("config: eventduration must be positive, got %d", c.EventDuration)
	}
	if c.CalendarID == "" {
		return fmt.Errorf("config: calendarid is empty")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config: timezone: %w", err)
	}
	switch c.Token.Store {
	case TokenStoreFile, TokenStoreSQLite:
	default:
		return fmt.Errorf("config: token.store must be %q or %q, got %q", TokenStoreFile, TokenStoreSQLite, c.Token.Store)
	}
	if c.Bulk.Concurrency <= 0 {
		return fmt.Errorf("config: bulk.concurrency must be positive, got %d", c.Bulk.Concurrency)
	}
	if c.Bulk.Retries < 0 {
		return fmt.Errorf("config: bulk.retries must not be negative, got %d", c.Bulk.Retries)
	}
	return nil
}

// Location is the zone events are created in; an empty Timezone means local.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
