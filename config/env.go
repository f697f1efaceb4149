package config

import (
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

const EnvPrefix = "LOCALAUTH_"

// envOverrides lists the settings that can be replaced from the environment.
// Pointers distinguish "unset" from a zero value.
type envOverrides struct {
	LogLevel       *string  `mapstructure:"LOCALAUTH_LOGLEVEL"`
	LogFile        *string  `mapstructure:"LOCALAUTH_LOG_FILE"`
	Host           *string  `mapstructure:"LOCALAUTH_HOST"`
	Port           *string  `mapstructure:"LOCALAUTH_PORT"`
	PasswordScheme *string  `mapstructure:"LOCALAUTH_PASSWORD_SCHEME"`
	RateLimitRPS   *float64 `mapstructure:"LOCALAUTH_RATE_LIMIT_RPS"`
	RateLimitBurst *int     `mapstructure:"LOCALAUTH_RATE_LIMIT_BURST"`
	StorageType    *string  `mapstructure:"LOCALAUTH_STORAGE_TYPE"`
	SQLitePath     *string  `mapstructure:"LOCALAUTH_SQLITE_PATH"`
	RedisAddr      *string  `mapstructure:"LOCALAUTH_REDIS_ADDR"`
	RedisPassword  *string  `mapstructure:"LOCALAUTH_REDIS_PASSWORD"`
	RedisDB        *int     `mapstructure:"LOCALAUTH_REDIS_DB"`
	MongoDSN       *string  `mapstructure:"LOCALAUTH_MONGODB_DSN"`
	PostgresDSN    *string  `mapstructure:"LOCALAUTH_POSTGRES_DSN"`
}

// ApplyEnvOverrides replaces config values with LOCALAUTH_* variables found
// in environ, which has the os.Environ "KEY=value" form.
func ApplyEnvOverrides(cfg *ServiceConfig, environ []string) error {
	vars := make(map[string]string)
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		vars[key] = value
	}
	if len(vars) == 0 {
		return nil
	}

	var env envOverrides
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &env,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(vars); err != nil {
		return err
	}

	setString(&cfg.LogLevel, env.LogLevel)
	setString(&cfg.LogFile, env.LogFile)
	setString(&cfg.Host, env.Host)
	setString(&cfg.Port, env.Port)
	setString(&cfg.PasswordScheme, env.PasswordScheme)
	setString(&cfg.Storage.Type, env.StorageType)
	setString(&cfg.Storage.SQLite.Path, env.SQLitePath)
	setString(&cfg.Storage.Redis.Addr, env.RedisAddr)
	setString(&cfg.Storage.Redis.Password, env.RedisPassword)
	setString(&cfg.Storage.MongoDB.DSN, env.MongoDSN)
	setString(&cfg.Storage.Postgres.DSN, env.PostgresDSN)

	if env.RateLimitRPS != nil {
		cfg.RateLimit.RequestsPerSecond = *env.RateLimitRPS
	}
	if env.RateLimitBurst != nil {
		cfg.RateLimit.Burst = *env.RateLimitBurst
	}
	if env.RedisDB != nil {
		cfg.Storage.Redis.DB = *env.RedisDB
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
