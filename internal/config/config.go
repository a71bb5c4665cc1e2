// Package config loads the agptools configuration file.
//
// The file is TOML, read from --config or $XDG_CONFIG_HOME/agptools/config.toml
// (~/.config/agptools/config.toml). Environment variables in the file are
// expanded before parsing, so secrets such as a Redis password can stay out
// of it:
//
//	[gap]
//	length = 100
//	type = "scaffold"
//	evidence = ["paired-ends"]
//
//	[store]
//	redis_url = "redis://:${REDIS_PASSWORD}@localhost:6379/0"
//
// Command-line flags override file values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/agptools/pkg/agp/transform"
	"github.com/matzehuels/agptools/pkg/assemble"
	agpio "github.com/matzehuels/agptools/pkg/io"
	"github.com/matzehuels/agptools/pkg/seqstore"
)

// AppName names the config and cache directories.
const AppName = "agptools"

// Config is the root of the configuration file.
type Config struct {
	Gap      Gap      `toml:"gap"`
	FASTA    FASTA    `toml:"fasta"`
	Assemble Assemble `toml:"assemble"`
	Cache    Cache    `toml:"cache"`
	Store    Store    `toml:"store"`
	Server   Server   `toml:"server"`
}

// Gap is the gap inserted by join.
type Gap struct {
	Length   int      `toml:"length"`
	Type     string   `toml:"type"`
	Linkage  *bool    `toml:"linkage"`
	Evidence []string `toml:"evidence"`
}

// FASTA controls FASTA output.
type FASTA struct {
	LineWidth int `toml:"line_width"`
}

// Assemble controls sequence assembly.
type Assemble struct {
	Workers int `toml:"workers"`
}

// Cache selects where fetched sequence slices are cached.
type Cache struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir"`
	// RedisURL, when set, caches in Redis instead of Dir.
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

// Store is a Redis sequence store used instead of a FASTA file.
type Store struct {
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

// Server configures `agptools serve`.
type Server struct {
	Addr string `toml:"addr"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	linkage := transform.DefaultGapSpec.Linkage
	return Config{
		Gap: Gap{
			Length:  transform.DefaultGapSpec.Length,
			Type:    transform.DefaultGapSpec.Type,
			Linkage: &linkage,
		},
		FASTA:    FASTA{LineWidth: agpio.DefaultLineWidth},
		Assemble: Assemble{Workers: assemble.DefaultWorkers},
		Cache:    Cache{Prefix: "agptools:cache:"},
		Store:    Store{Prefix: seqstore.DefaultRedisPrefix},
		Server:   Server{Addr: "127.0.0.1:8080"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/agptools/config.toml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// DefaultCacheDir returns $XDG_CACHE_HOME/agptools, falling back to
// ~/.cache.
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads the config at path merged over [Defaults]. An empty path
// means [DefaultPath], which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Defaults(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Defaults(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data merged over [Defaults]. Unknown keys are an
// error so typos do not pass silently.
func Parse(data []byte) (Config, error) {
	var file Config
	md, err := toml.Decode(os.ExpandEnv(string(data)), &file)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	cfg := Merge(Defaults(), file)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Merge overlays the non-zero fields of over onto base.
func Merge(base, over Config) Config {
	out := base
	if over.Gap.Length != 0 {
		out.Gap.Length = over.Gap.Length
	}
	if over.Gap.Type != "" {
		out.Gap.Type = over.Gap.Type
	}
	if over.Gap.Linkage != nil {
		out.Gap.Linkage = over.Gap.Linkage
	}
	if len(over.Gap.Evidence) > 0 {
		out.Gap.Evidence = append([]string(nil), over.Gap.Evidence...)
	}
	if over.FASTA.LineWidth != 0 {
		out.FASTA.LineWidth = over.FASTA.LineWidth
	}
	if over.Assemble.Workers != 0 {
		out.Assemble.Workers = over.Assemble.Workers
	}
	if over.Cache.Disabled {
		out.Cache.Disabled = true
	}
	if over.Cache.Dir != "" {
		out.Cache.Dir = over.Cache.Dir
	}
	if over.Cache.RedisURL != "" {
		out.Cache.RedisURL = over.Cache.RedisURL
	}
	if over.Cache.Prefix != "" {
		out.Cache.Prefix = over.Cache.Prefix
	}
	if over.Store.RedisURL != "" {
		out.Store.RedisURL = over.Store.RedisURL
	}
	if over.Store.Prefix != "" {
		out.Store.Prefix = over.Store.Prefix
	}
	if over.Server.Addr != "" {
		out.Server.Addr = over.Server.Addr
	}
	return out
}

// Validate rejects values no command can use.
func (c Config) Validate() error {
	if c.Gap.Length < 1 {
		return fmt.Errorf("gap.length must be positive, got %d", c.Gap.Length)
	}
	if c.FASTA.LineWidth < 0 {
		return fmt.Errorf("fasta.line_width must not be negative, got %d", c.FASTA.LineWidth)
	}
	if c.Assemble.Workers < 0 {
		return fmt.Errorf("assemble.workers must not be negative, got %d", c.Assemble.Workers)
	}
	return nil
}

// GapSpec returns the join gap as a [transform.GapSpec].
func (c Config) GapSpec() transform.GapSpec {
	linkage := transform.DefaultGapSpec.Linkage
	if c.Gap.Linkage != nil {
		linkage = *c.Gap.Linkage
	}
	return transform.GapSpec{
		Length:   c.Gap.Length,
		Type:     c.Gap.Type,
		Linkage:  linkage,
		Evidence: c.Gap.Evidence,
	}
}

// CacheDir returns the configured cache directory or the default one.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return DefaultCacheDir()
}
