// ABOUTME: Configuration for the todo service and CLI.
// ABOUTME: Layers defaults, a YAML file under XDG config and environment variables.

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environments recognised by Env.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Store backend names.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

type Config struct {
	Env    string       `yaml:"env"`
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StoreConfig selects a backend (memory, badger, sqlite or mongo). Path is the
// badger directory or sqlite file; empty means the XDG data default.
type StoreConfig struct {
	Backend string      `yaml:"backend"`
	Path    string      `yaml:"path,omitempty"`
	Mongo   MongoConfig `yaml:"mongo"`
}

type MongoConfig struct {
	URI            string        `yaml:"uri,omitempty"`
	User           string        `yaml:"user,omitempty"`
	Password       string        `yaml:"password,omitempty"`
	Cluster        string        `yaml:"cluster,omitempty"`
	Database       string        `yaml:"database"`
	Collection     string        `yaml:"collection"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	SocketTimeout  time.Duration `yaml:"socket_timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Env: EnvDevelopment,
		Server: ServerConfig{
			Addr:            ":4000",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Store: StoreConfig{
			Backend: BackendBadger,
			Mongo: MongoConfig{
				Database:       "todos",
				Collection:     "todos",
				ConnectTimeout: 10 * time.Second,
				SocketTimeout:  45 * time.Second,
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "todo")
}

// DefaultPath returns the path to the config file.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DataDir returns the directory holding embedded store files.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "todo")
}

// Load builds the effective configuration. An empty path reads DefaultPath and
// tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path) //nolint:gosec // Config path is chosen by the user
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvDevelopment, EnvTest, EnvProduction:
	default:
		return fmt.Errorf("unknown env %q", c.Env)
	}
	switch c.Store.Backend {
	case BackendMemory, BackendBadger, BackendSQLite, BackendMongo:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Server.Addr == "" {
		return errors.New("server addr is empty")
	}
	if c.Store.Backend == BackendMongo && c.Store.Mongo.Collection == "" {
		return errors.New("mongo collection is empty")
	}
	return nil
}

// Save writes configuration to path as YAML.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// Redacted returns a copy with credentials masked, for display.
func (c *Config) Redacted() *Config {
	cp := *c
	if cp.Store.Mongo.Password != "" {
		cp.Store.Mongo.Password = "****"
	}
	if cp.Store.Mongo.URI != "" {
		if u, err := url.Parse(cp.Store.Mongo.URI); err == nil && u.User != nil {
			if _, ok := u.User.Password(); ok {
				u.User = url.UserPassword(u.User.Username(), "****")
				cp.Store.Mongo.URI = u.String()
			}
		}
	}
	return &cp
}

// ResolvedPath returns the on-disk location for embedded backends.
func (s StoreConfig) ResolvedPath() string {
	if s.Path != "" {
		return s.Path
	}
	switch s.Backend {
	case BackendSQLite:
		return filepath.Join(DataDir(), "todo.db")
	default:
		return filepath.Join(DataDir(), "badger")
	}
}

// ConnectionURI returns the mongo URI, building an Atlas SRV URI from parts when
// no explicit URI is configured.
func (m MongoConfig) ConnectionURI() string {
	if m.URI != "" {
		return m.URI
	}
	if m.Cluster == "" {
		return "mongodb://localhost:27017/" + m.Database
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		Host:     m.Cluster,
		Path:     "/" + m.Database,
		RawQuery: "retryWrites=true&w=majority",
	}
	if m.User != "" {
		u.User = url.UserPassword(m.User, m.Password)
	}
	return u.String()
}

// IsProduction reports whether the production environment is selected.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}
