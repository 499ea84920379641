package core

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/study-manager/study-manager/pkg/types"
)

const ENV_PREFIX = "STUDY_MANAGER_"

// LoadBaseConfig reads a toml file, or the environment when path is empty.
func LoadBaseConfig(path string) (CoreConfig, error) {
	if path == "" {
		return LoadBaseConfigFromENV(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return CoreConfig{}, err
	}

	conf := DefaultConfig()
	if err = toml.Unmarshal(raw, &conf); err != nil {
		return CoreConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return conf, nil
}

// LoadEnvFile loads KEY=VALUE pairs into the process environment without
// overriding variables that are already set.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	return godotenv.Load(path)
}

func LoadBaseConfigFromENV() CoreConfig {
	c := DefaultConfig()
	c.FromENV()
	return c
}

func DefaultConfig() CoreConfig {
	return CoreConfig{
		Addr: ":3001",
		Log: Log{
			Level: "info",
		},
		Store: StoreConfig{
			Driver: types.STORE_DRIVER_SQLITE,
			DSN:    "study-manager.db",
		},
		Metrics: MetricsConfig{
			Enable: true,
			Path:   "/metrics",
		},
	}
}

type CoreConfig struct {
	Addr    string        `toml:"addr"`
	Log     Log           `toml:"log"`
	Store   StoreConfig   `toml:"store"`
	Limiter LimiterConfig `toml:"limiter"`
	Metrics MetricsConfig `toml:"metrics"`
}

func (c *CoreConfig) FromENV() {
	if addr := os.Getenv(ENV_PREFIX + "ADDRESS"); addr != "" {
		c.Addr = addr
	}
	c.Log.FromENV()
	c.Store.FromENV()
	c.Limiter.FromENV()
	c.Metrics.FromENV()
}

type StoreConfig struct {
	Driver   string        `toml:"driver"`
	DSN      string        `toml:"dsn"`
	MaxOpen  int           `toml:"max_open_conns"`
	MaxIdle  int           `toml:"max_idle_conns"`
	Replicas []StoreConfig `toml:"replicas"`
}

func (m *StoreConfig) FromENV() {
	if driver := os.Getenv(ENV_PREFIX + "STORE_DRIVER"); driver != "" {
		m.Driver = driver
	}
	if dsn := os.Getenv(ENV_PREFIX + "STORE_DSN"); dsn != "" {
		m.DSN = dsn
	}
	m.MaxOpen = envInt(ENV_PREFIX+"STORE_MAX_OPEN_CONNS", m.MaxOpen)
	m.MaxIdle = envInt(ENV_PREFIX+"STORE_MAX_IDLE_CONNS", m.MaxIdle)
}

func (m StoreConfig) DriverName() string {
	if m.Driver == "" {
		return types.STORE_DRIVER_SQLITE
	}
	return strings.ToLower(m.Driver)
}

// FormatDSN adds a busy timeout to sqlite dsn so concurrent writers wait instead of failing.
func (m StoreConfig) FormatDSN() string {
	if m.DriverName() != types.STORE_DRIVER_SQLITE || strings.Contains(m.DSN, "_pragma=busy_timeout") {
		return m.DSN
	}
	sep := "?"
	if strings.Contains(m.DSN, "?") {
		sep = "&"
	}
	return m.DSN + sep + "_pragma=busy_timeout(5000)"
}

func (m StoreConfig) MaxOpenConns() int {
	if m.MaxOpen == 0 && m.DriverName() == types.STORE_DRIVER_SQLITE {
		// sqlite allows a single writer
		return 1
	}
	return m.MaxOpen
}

func (m StoreConfig) MaxIdleConns() int {
	return m.MaxIdle
}

func (m StoreConfig) Validate() error {
	switch m.DriverName() {
	case types.STORE_DRIVER_POSTGRES, types.STORE_DRIVER_SQLITE:
	default:
		return fmt.Errorf("unsupported store driver %q", m.Driver)
	}
	if m.DSN == "" {
		return fmt.Errorf("store dsn is empty")
	}
	return nil
}

type LimiterConfig struct {
	// PerMinute is the number of requests a client ip may issue per minute, 0 disables the limiter
	PerMinute int `toml:"per_minute"`
}

func (l *LimiterConfig) FromENV() {
	l.PerMinute = envInt(ENV_PREFIX+"LIMITER_PER_MINUTE", l.PerMinute)
}

type MetricsConfig struct {
	Enable bool   `toml:"enable"`
	Path   string `toml:"path"`
}

func (m *MetricsConfig) FromENV() {
	if v := os.Getenv(ENV_PREFIX + "METRICS_ENABLE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			m.Enable = b
		}
	}
	if v := os.Getenv(ENV_PREFIX + "METRICS_PATH"); v != "" {
		m.Path = v
	}
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	if level := os.Getenv(ENV_PREFIX + "LOG_LEVEL"); level != "" {
		l.Level = level
	}
	if path := os.Getenv(ENV_PREFIX + "LOG_PATH"); path != "" {
		l.Path = path
	}
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
