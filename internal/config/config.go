package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/adamseriwarp/custom-reports/internal/normalize"
)

// AppConfig is the application configuration, loaded from config.toml
// next to the executable with environment overrides for credentials.
type AppConfig struct {
	Server   ServerConfig        `toml:"server"`
	Database DatabaseConfig      `toml:"database"`
	Reports  ReportsConfig       `toml:"reports"`
	Markets  normalize.RuleTable `toml:"markets"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DatabaseConfig points at the otp_reports MySQL database.
type DatabaseConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
}

// ReportsConfig tunes report computation.
type ReportsConfig struct {
	CacheTTLSeconds   int    `toml:"cache_ttl_seconds"`
	DefaultWindowDays int    `toml:"default_window_days"`
	WarehouseVariant  string `toml:"warehouse_variant"` // prefix / prefix_or_abbrev
}

// DefaultConfig returns the built-in configuration, including the
// production market rule table.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20830,
			DevMode: false,
		},
		Database: DatabaseConfig{
			Host: "127.0.0.1",
			Port: 3306,
			Name: "warp_reports",
		},
		Reports: ReportsConfig{
			CacheTTLSeconds:   300,
			DefaultWindowDays: 30,
			WarehouseVariant:  string(normalize.WarehousePrefixOrAbbrev),
		},
		Markets: normalize.DefaultRuleTable(),
	}
}

// GetExeDir returns the directory containing the executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig reads config.toml from the executable's directory. A missing
// file is not an error: defaults apply. Database credentials can come
// from the environment (optionally via a local .env) and take precedence
// over the file, matching how the reports were deployed before.
func LoadConfig() (*AppConfig, error) {
	cfg := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")
	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// An empty rule table would silently kill every market report.
	if len(cfg.Markets.Rules) == 0 {
		cfg.Markets = normalize.DefaultRuleTable()
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides layers DB_* environment variables over the file
// values. .env is best-effort; deployed environments set real variables.
func applyEnvOverrides(cfg *AppConfig) {
	_ = godotenv.Load()

	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = p
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
}

// DSN builds the MySQL driver connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=false&charset=utf8mb4",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// WarehousePredicate resolves the configured warehouse-detection variant.
func (r ReportsConfig) WarehousePredicate() func(string) bool {
	return normalize.WarehousePredicate(normalize.WarehouseVariant(r.WarehouseVariant))
}
