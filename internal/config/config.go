// Package config loads the service configuration from a YAML file with
// environment variable expansion. Every field has a working default so a
// missing config file starts a usable single-user instance.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/terraincognita07/cyclia/internal/models"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	AverageLoop  = "loop"
	AverageGonum = "gonum"
)

type Config struct {
	Server     Server     `yaml:"server"`
	Storage    Storage    `yaml:"storage"`
	Lock       Lock       `yaml:"lock"`
	Defaults   Defaults   `yaml:"defaults"`
	Prediction Prediction `yaml:"prediction"`
	Timezone   string     `yaml:"timezone"`
}

type Server struct {
	Port         string `yaml:"port"`
	CookieSecure bool   `yaml:"cookie_secure"`
}

type Storage struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// Lock is the optional app lock: when PassphraseHash is set, the API
// requires an unlocked session cookie.
type Lock struct {
	PassphraseHash    string `yaml:"passphrase_hash"`
	SessionSecret     string `yaml:"session_secret"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes"`
}

func (l Lock) Enabled() bool {
	return l.PassphraseHash != ""
}

// Defaults seeds the settings of a fresh data store and the forecast
// lookahead used by the API.
type Defaults struct {
	CycleLength     int    `yaml:"cycle_length"`
	LutealPhase     int    `yaml:"luteal_phase"`
	Theme           string `yaml:"theme"`
	LookaheadMonths int    `yaml:"lookahead_months"`
}

type Prediction struct {
	Average string `yaml:"average"`
}

func Default() *Config {
	return &Config{
		Server: Server{Port: "8080"},
		Storage: Storage{
			Backend: BackendJSON,
			Path:    filepath.Join("data", "cyclia.json"),
		},
		Lock: Lock{SessionTTLMinutes: 12 * 60},
		Defaults: Defaults{
			CycleLength:     models.DefaultCycleLength,
			LutealPhase:     models.DefaultLutealPhase,
			Theme:           models.DefaultTheme,
			LookaheadMonths: 6,
		},
		Prediction: Prediction{Average: AverageGonum},
		Timezone:   "UTC",
	}
}

// Load reads the YAML config at path, expanding ${ENV} references. A
// missing file is not an error: the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(raw))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Lock.Validate(); err != nil {
		return err
	}
	if err := c.Defaults.Validate(); err != nil {
		return err
	}
	return c.Prediction.Validate()
}

func (l *Lock) Validate() error {
	if !l.Enabled() {
		return nil
	}
	return validation.ValidateStruct(l,
		validation.Field(&l.SessionSecret, validation.Required),
		validation.Field(&l.SessionTTLMinutes, validation.Min(1)),
	)
}

func (s *Server) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Port, validation.Required),
	)
}

func (s *Storage) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Backend, validation.Required, validation.In(BackendJSON, BackendSQLite)),
		validation.Field(&s.Path, validation.Required),
	)
}

func (d *Defaults) Validate() error {
	return validation.ValidateStruct(d,
		validation.Field(&d.CycleLength, validation.Required, validation.Min(1)),
		validation.Field(&d.LutealPhase, validation.Required, validation.Min(1)),
		validation.Field(&d.LookaheadMonths, validation.Min(0), validation.Max(24)),
	)
}

func (p *Prediction) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Average, validation.Required, validation.In(AverageLoop, AverageGonum)),
	)
}
