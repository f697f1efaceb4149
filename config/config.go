package config

import (
	"fmt"
	"os"
	"time"

	"github.com/haguru/localauth/internal/credstore"

	structValidator "github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

const (
	CONFIG_PATH = "./res/config.yaml"

	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"
	StorageMongoDB  = "mongodb"
	StoragePostgres = "postgres"

	DefaultPasswordScheme = credstore.SchemePlain
	DefaultRequestsPerSec = 1.0
	DefaultBurst          = 5
	DefaultSQLitePath     = "./localauth.db"
	DefaultMongoColl      = "kv_store"
	DefaultMongoTimeout   = 10 * time.Second
	DefaultMaxOpenConns   = 10
	DefaultMaxIdleConns   = 5
	DefaultConnMaxLife    = 30 * time.Second
)

// ServiceConfig holds the configuration for the service.
type ServiceConfig struct {
	ServiceName    string          `yaml:"service_name" validate:"required"`
	LogLevel       string          `yaml:"loglevel" validate:"required"`
	LogFile        string          `yaml:"log_file"`
	Host           string          `yaml:"host" validate:"required"`
	Port           string          `yaml:"port" validate:"required"`
	PasswordScheme string          `yaml:"password_scheme" validate:"omitempty,oneof=plain bcrypt"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
	Storage        Storage         `yaml:"storage" validate:"required"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gte=0"`
	Burst             int     `yaml:"burst" validate:"gte=0"`
}

// Storage selects the key-value backend and the two keys the store uses.
type Storage struct {
	Type      string `yaml:"type" validate:"required,oneof=memory sqlite redis mongodb postgres"`
	UsersKey  string `yaml:"users_key"`
	MarkerKey string `yaml:"marker_key"`

	SQLite   SQLiteConfig   `yaml:"sqlite_config" validate:"omitempty"`
	Redis    RedisConfig    `yaml:"redis_config" validate:"omitempty"`
	MongoDB  MongoDBConfig  `yaml:"mongodb_config" validate:"omitempty"`
	Postgres PostgresConfig `yaml:"postgres_config" validate:"omitempty"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

type MongoDBConfig struct {
	DSN        string             `yaml:"dsn"`
	Collection string             `yaml:"collection"`
	Timeout    time.Duration      `yaml:"timeout"`
	Options    MongoServerOptions `yaml:"mongo_server_options"`
}

type PostgresConfig struct {
	DSN     string                `yaml:"dsn"`
	Options PostgresServerOptions `yaml:"postgres_server_options"`
}

type MongoServerOptions struct {
	APIVersion           string `yaml:"api_version"`
	SetStrict            bool   `yaml:"set_strict"`
	SetDeprecationErrors bool   `yaml:"set_deprecation_errors"`
}

type PostgresServerOptions struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// ReadLocalConfig reads the service configuration from a YAML file at the specified path.
// It unmarshals the YAML content into a ServiceConfig struct and returns it.
// If there is an error reading the file or unmarshaling the content, it returns an error.
func ReadLocalConfig(configPath string) (*ServiceConfig, error) {
	config := &ServiceConfig{}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

// Load reads the file, applies LOCALAUTH_* overrides from the environment,
// fills defaults and validates the result.
func Load(configPath string) (*ServiceConfig, error) {
	cfg, err := ReadLocalConfig(configPath)
	if err != nil {
		return nil, err
	}

	if err := ApplyEnvOverrides(cfg, os.Environ()); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills every optional setting left empty.
func (c *ServiceConfig) ApplyDefaults() {
	if c.PasswordScheme == "" {
		c.PasswordScheme = DefaultPasswordScheme
	}
	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = DefaultRequestsPerSec
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = DefaultBurst
	}

	s := &c.Storage
	if s.UsersKey == "" {
		s.UsersKey = credstore.DefaultUsersKey
	}
	if s.MarkerKey == "" {
		s.MarkerKey = credstore.DefaultMarkerKey
	}
	if s.SQLite.Path == "" {
		s.SQLite.Path = DefaultSQLitePath
	}
	if s.MongoDB.Collection == "" {
		s.MongoDB.Collection = DefaultMongoColl
	}
	if s.MongoDB.Timeout == 0 {
		s.MongoDB.Timeout = DefaultMongoTimeout
	}

	opts := &s.Postgres.Options
	if opts.MaxOpenConns == 0 {
		opts.MaxOpenConns = DefaultMaxOpenConns
	}
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = DefaultMaxIdleConns
	}
	if opts.ConnMaxLifetime == 0 {
		opts.ConnMaxLifetime = DefaultConnMaxLife
	}
}

// Validate checks the struct tags and the settings the selected backend needs.
func (c *ServiceConfig) Validate() error {
	if err := structValidator.New().Struct(c); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	switch c.Storage.Type {
	case StorageRedis:
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("validation error: storage.redis_config.addr is required for %s storage", StorageRedis)
		}
	case StorageMongoDB:
		if c.Storage.MongoDB.DSN == "" {
			return fmt.Errorf("validation error: storage.mongodb_config.dsn is required for %s storage", StorageMongoDB)
		}
	case StoragePostgres:
		if c.Storage.Postgres.DSN == "" {
			return fmt.Errorf("validation error: storage.postgres_config.dsn is required for %s storage", StoragePostgres)
		}
	}
	return nil
}

func BuildServerAPIOptions(cfg MongoServerOptions) *options.ServerAPIOptions {
	opts := options.ServerAPI(options.ServerAPIVersion(cfg.APIVersion))
	opts.SetStrict(cfg.SetStrict)
	opts.SetDeprecationErrors(cfg.SetDeprecationErrors)

	return opts
}
