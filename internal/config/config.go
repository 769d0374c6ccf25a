package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Session SessionConfig `mapstructure:"session"`
	Admin   AdminConfig   `mapstructure:"admin"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type StorageConfig struct {
	Backend         string `mapstructure:"backend"`
	DataDir         string `mapstructure:"data_dir"`
	StudentsFile    string `mapstructure:"students_file"`
	SubmissionsFile string `mapstructure:"submissions_file"`
	ApprovedFile    string `mapstructure:"approved_file"`
	ProductsFile    string `mapstructure:"products_file"`
}

// Path resolves a store file name against the data directory.
func (s StorageConfig) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.DataDir, name)
}

type RedisConfig struct {
	Address   string `mapstructure:"address"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type SessionConfig struct {
	Backend    string        `mapstructure:"backend"`
	CookieName string        `mapstructure:"cookie_name"`
	TTL        time.Duration `mapstructure:"ttl"`
	Secure     bool          `mapstructure:"secure"`
	Secret     string        `mapstructure:"secret"`
}

type AdminConfig struct {
	Email        string `mapstructure:"email"`
	Password     string `mapstructure:"password"`
	PasswordHash string `mapstructure:"password_hash"`
	Page         string `mapstructure:"page"`
}

type AuthConfig struct {
	LoginRedirect string `mapstructure:"login_redirect"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	GelfAddr string `mapstructure:"gelf_addr"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// UsesRedis reports whether any component needs a Redis connection.
func (c *Config) UsesRedis() bool {
	return c.Storage.Backend == BackendRedis || c.Session.Backend == BackendRedis
}

func validateConfig(cfg *Config) error {
	var errs []error

	if cfg.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	switch cfg.Storage.Backend {
	case BackendFile, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("storage.backend %q: must be file or redis", cfg.Storage.Backend))
	}
	if cfg.Storage.Backend == BackendFile && cfg.Storage.DataDir == "" {
		errs = append(errs, errors.New("storage.data_dir is required for the file backend"))
	}
	switch cfg.Session.Backend {
	case BackendMemory, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("session.backend %q: must be memory or redis", cfg.Session.Backend))
	}
	if cfg.UsesRedis() && cfg.Redis.Address == "" {
		errs = append(errs, errors.New("redis.address is required when a redis backend is selected"))
	}
	if cfg.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	if len(cfg.Session.Secret) < 16 {
		errs = append(errs, errors.New("session.secret must be at least 16 bytes"))
	}
	if cfg.Admin.Email == "" {
		errs = append(errs, errors.New("admin.email is required"))
	}
	if cfg.Admin.Password == "" && cfg.Admin.PasswordHash == "" {
		errs = append(errs, errors.New("admin.password or admin.password_hash is required"))
	}

	return errors.Join(errs...)
}
