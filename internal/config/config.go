// Package config loads p75 settings from <dataDir>/config.yaml, .env files
// and P75_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/marcus/p75/internal/flock"
	"github.com/spf13/viper"
)

const (
	lockTimeout = 2 * time.Second
	configFile  = "config.yaml"
	lockFile    = "config.yaml.lock"
	envPrefix   = "P75"
)

// Defaults
const (
	DefaultModel    = "gpt-4o-mini"
	DefaultTimeout  = 30 * time.Second
	DefaultLogLevel = "info"
	DefaultLogFile  = "p75.log"
)

// Config is the resolved configuration
type Config struct {
	AI struct {
		APIKey  string        `mapstructure:"api_key"`
		BaseURL string        `mapstructure:"base_url"`
		Model   string        `mapstructure:"model"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"ai"`
	Log struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"log"`
	Profile struct {
		Name          string  `mapstructure:"name"`
		InitialWeight float64 `mapstructure:"initial_weight"`
		TargetWeight  float64 `mapstructure:"target_weight"`
	} `mapstructure:"profile"`
}

type kind int

const (
	kindString kind = iota
	kindFloat
	kindDuration
)

// known keys and how their values are parsed on set
var keys = map[string]kind{
	"ai.api_key":             kindString,
	"ai.base_url":            kindString,
	"ai.model":               kindString,
	"ai.timeout":             kindDuration,
	"log.level":              kindString,
	"log.file":               kindString,
	"profile.name":           kindString,
	"profile.initial_weight": kindFloat,
	"profile.target_weight":  kindFloat,
}

// secret keys are masked by List
var secret = map[string]bool{"ai.api_key": true}

// Keys returns the settable keys in sorted order
func Keys() []string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Path returns the config file path for a data directory
func Path(baseDir string) string {
	return filepath.Join(baseDir, configFile)
}

func newViper(baseDir string, withEnv bool) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(Path(baseDir))
	v.SetConfigType("yaml")

	if withEnv {
		v.SetDefault("ai.model", DefaultModel)
		v.SetDefault("ai.timeout", DefaultTimeout)
		v.SetDefault("log.level", DefaultLogLevel)
		v.SetDefault("log.file", DefaultLogFile)

		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	if _, err := os.Stat(Path(baseDir)); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", configFile, err)
		}
	}
	return v, nil
}

// Load resolves the configuration for baseDir. Environment variables win
// over the file; .env files in baseDir and the working directory are loaded
// first without overriding variables that are already set.
func Load(baseDir string) (*Config, error) {
	_ = godotenv.Load(filepath.Join(baseDir, ".env"))
	_ = godotenv.Load()

	v, err := newViper(baseDir, true)
	if err != nil {
		return nil, err
	}
	// AutomaticEnv only applies to keys viper already knows about
	for k := range keys {
		_ = v.BindEnv(k)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the effective value of key
func Get(baseDir, key string) (string, error) {
	if _, ok := keys[key]; !ok {
		return "", fmt.Errorf("unknown config key %q", key)
	}
	cfg, err := Load(baseDir)
	if err != nil {
		return "", err
	}
	return cfg.value(key), nil
}

// List returns every key with its effective value, secrets masked
func List(baseDir string) (map[string]string, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(keys))
	for k := range keys {
		val := cfg.value(k)
		if secret[k] && val != "" {
			val = mask(val)
		}
		out[k] = val
	}
	return out, nil
}

// Set validates and stores key in the config file
func Set(baseDir, key, raw string) error {
	k, ok := keys[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	var value any = raw
	switch k {
	case kindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%s: expected a positive number, got %q", key, raw)
		}
		value = f
	case kindDuration:
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return fmt.Errorf("%s: expected a duration like 30s, got %q", key, raw)
		}
		value = d.String()
	}

	return withConfigLock(baseDir, func() error {
		v, err := newViper(baseDir, false)
		if err != nil {
			return err
		}
		v.Set(key, value)
		return save(baseDir, v)
	})
}

// save writes the file-backed settings using atomic write (temp file + rename)
func save(baseDir string, v *viper.Viper) error {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(baseDir, "config-*.yaml.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	tmp.Close()

	if err := v.WriteConfigAs(tmpName); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, Path(baseDir))
}

// withConfigLock serializes read-modify-write cycles on config.yaml
func withConfigLock(baseDir string, fn func() error) error {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(baseDir, lockFile), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := flock.Lock(f, lockTimeout); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer flock.Unlock(f)

	return fn()
}

func (c *Config) value(key string) string {
	switch key {
	case "ai.api_key":
		return c.AI.APIKey
	case "ai.base_url":
		return c.AI.BaseURL
	case "ai.model":
		return c.AI.Model
	case "ai.timeout":
		return c.AI.Timeout.String()
	case "log.level":
		return c.Log.Level
	case "log.file":
		return c.Log.File
	case "profile.name":
		return c.Profile.Name
	case "profile.initial_weight":
		return formatFloat(c.Profile.InitialWeight)
	case "profile.target_weight":
		return formatFloat(c.Profile.TargetWeight)
	}
	return ""
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func mask(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}

// LogPath resolves the log file against baseDir
func (c *Config) LogPath(baseDir string) string {
	if filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(baseDir, c.Log.File)
}
