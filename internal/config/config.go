package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mailchips/internal/emails"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// Config holds every widget option. Values are layered: defaults, then the
// config file, then MAILCHIPS_* environment variables, then CLI flags.
type Config struct {
	DisplayLimit         int    `json:"displayLimit" yaml:"displayLimit" env:"MAILCHIPS_DISPLAY_LIMIT"`
	ShowInvalidContainer bool   `json:"showInvalidContainer" yaml:"showInvalidContainer" env:"MAILCHIPS_SHOW_INVALID"`
	DisplayOnly          bool   `json:"displayOnly" yaml:"displayOnly" env:"MAILCHIPS_DISPLAY_ONLY"`
	PreventDuplicates    bool   `json:"preventDuplicates" yaml:"preventDuplicates" env:"MAILCHIPS_PREVENT_DUPLICATES"`
	Sort                 string `json:"sort,omitempty" yaml:"sort,omitempty" env:"MAILCHIPS_SORT"`

	// Validator is "default" or "domains". With "domains", an address is
	// invalid only when it fails the syntax check and is outside
	// AllowedDomains.
	Validator      string   `json:"validator,omitempty" yaml:"validator,omitempty" env:"MAILCHIPS_VALIDATOR"`
	AllowedDomains []string `json:"allowedDomains,omitempty" yaml:"allowedDomains,omitempty"`

	Labels           Labels   `json:"labels" yaml:"labels"`
	InitialAddresses []string `json:"initialAddresses,omitempty" yaml:"initialAddresses,omitempty"`

	// BindForm routes every mutation through a host form array.
	BindForm bool   `json:"bindForm" yaml:"bindForm" env:"MAILCHIPS_BIND_FORM"`
	LogFile  string `json:"logFile,omitempty" yaml:"logFile,omitempty" env:"MAILCHIPS_LOG_FILE"`
	// Theme is light|dark|auto.
	Theme string `json:"theme,omitempty" yaml:"theme,omitempty" env:"MAILCHIPS_THEME"`
}

type Labels struct {
	All     string `json:"all" yaml:"all" env:"MAILCHIPS_LABEL_ALL"`
	Valid   string `json:"valid" yaml:"valid" env:"MAILCHIPS_LABEL_VALID"`
	Invalid string `json:"invalid" yaml:"invalid" env:"MAILCHIPS_LABEL_INVALID"`
}

func Default() *Config {
	l := emails.DefaultLabels()
	return &Config{
		DisplayLimit: emails.DefaultDisplayLimit,
		Validator:    "default",
		Labels:       Labels{All: l.All, Valid: l.Valid, Invalid: l.Invalid},
		Theme:        "auto",
	}
}

var fileNames = []string{"config.yaml", "config.yml", "config.json"}

func Dir() (string, error) {
	p, err := ProcessEnv()
	if err != nil {
		return "", err
	}
	// Test/advanced override (keeps unit tests from touching ~/.mailchips).
	if v := strings.TrimSpace(p.ConfigDir); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mailchips"), nil
}

// Path returns the first existing config file in Dir, or "" when there is
// none.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	for _, name := range fileNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return "", nil
}

// Load reads the config file (if any) over the defaults and applies the
// environment. An explicit path overrides discovery.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(b, c)
	default:
		err = yaml.Unmarshal(b, c)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays MAILCHIPS_* variables. Unset variables leave fields as
// they are.
func (c *Config) ApplyEnv() error {
	err := envdecode.Decode(c)
	if err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("decode environment: %w", err)
	}
	return nil
}

// Process holds settings that are needed before a config file can be
// located or any output written.
type Process struct {
	ConfigDir  string `env:"MAILCHIPS_CONFIG_DIR"`
	ConfigPath string `env:"MAILCHIPS_CONFIG"`
	Format     string `env:"MAILCHIPS_FORMAT"`
}

// ProcessEnv decodes Process from the environment. Format defaults to json.
func ProcessEnv() (Process, error) {
	var p Process
	if err := envdecode.Decode(&p); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Process{}, fmt.Errorf("decode environment: %w", err)
	}
	if p.Format == "" {
		p.Format = "json"
	}
	return p, nil
}

func (c *Config) Validate() error {
	if c.DisplayLimit < 0 {
		return fmt.Errorf("displayLimit must be >= 0 (got %d)", c.DisplayLimit)
	}
	if _, ok := emails.ComparatorByName(c.Sort); !ok {
		return fmt.Errorf("unknown sort: %q (want none|asc|desc|domain)", c.Sort)
	}
	switch strings.ToLower(strings.TrimSpace(c.Validator)) {
	case "", "default":
	case "domains":
		if len(c.AllowedDomains) == 0 {
			return errors.New("validator \"domains\" needs allowedDomains")
		}
	default:
		return fmt.Errorf("unknown validator: %q (want default|domains)", c.Validator)
	}
	switch strings.ToLower(strings.TrimSpace(c.Theme)) {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("unknown theme: %q (want auto|light|dark)", c.Theme)
	}
	return nil
}

// ValidatorFunc returns the configured custom validator, or nil for the
// default check.
func (c *Config) ValidatorFunc() emails.ValidatorFunc {
	if strings.EqualFold(strings.TrimSpace(c.Validator), "domains") {
		return emails.AllowedDomains(c.AllowedDomains...)
	}
	return nil
}

// StoreOptions converts the config into engine options. The caller supplies
// the external list and logger.
func (c *Config) StoreOptions() emails.Options {
	cmp, _ := emails.ComparatorByName(c.Sort)
	return emails.Options{
		Validator:         c.ValidatorFunc(),
		DisplayLimit:      c.DisplayLimit,
		PreventDuplicates: c.PreventDuplicates,
		Comparator:        cmp,
		Labels:            emails.Labels{All: c.Labels.All, Valid: c.Labels.Valid, Invalid: c.Labels.Invalid},
	}
}
