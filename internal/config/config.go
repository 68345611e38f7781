package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Stats    StatsConfig    `mapstructure:"stats"`
	S3       S3Config       `mapstructure:"s3"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	ReleaseMode  bool          `mapstructure:"release_mode"`
}

type DatabaseConfig struct {
	URI     string        `mapstructure:"uri"`
	Name    string        `mapstructure:"name"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// JWTConfig defines session token configuration. Secret has no default and
// must be supplied (JWT_SECRET).
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
	Issuer     string        `mapstructure:"issuer"`
}

type AuthConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
	// EnforceLedger requires a bearer token on workout/schedule routes and
	// rejects requests whose userId differs from the token's.
	EnforceLedger bool `mapstructure:"enforce_ledger"`
}

type StatsConfig struct {
	Window   int    `mapstructure:"window"`
	Location string `mapstructure:"location"` // IANA zone used for chart labels
}

// S3Config configures stats exports. An empty bucket disables them.
type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	JSON     bool   `mapstructure:"json"`
	File     string `mapstructure:"file"`
	ToStdout bool   `mapstructure:"to_stdout"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

var ErrMissingJWTSecret = errors.New("jwt.secret (JWT_SECRET) must be set")

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, jwt.secret -> JWT_SECRET
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	// A bare PORT is honored when SERVER_ADDRESS isn't given.
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SERVER_ADDRESS") == "" {
		v.SetDefault("server.address", ":"+port)
	}

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil // env vars and defaults are enough
	} else if err != nil {
		return
	}

	// Secrets have no default, so AutomaticEnv alone wouldn't surface them to Unmarshal.
	for _, key := range []string{"jwt.secret", "s3.access_key_id", "s3.secret_access_key", "s3.endpoint", "s3.bucket_name"} {
		if bindErr := v.BindEnv(key); bindErr != nil {
			return config, bindErr
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":3000")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.release_mode", false)

	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "workout_tracker")
	v.SetDefault("database.timeout", "10s")

	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("jwt.issuer", "workout-tracker")

	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.enforce_ledger", false)

	v.SetDefault("stats.window", 7)
	v.SetDefault("stats.location", "UTC")

	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.presign_expiry", "15m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.to_stdout", true)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "workout_tracker")
}

// Validate checks settings the process cannot start without.
func (c Config) Validate() error {
	if c.JWT.Secret == "" {
		return ErrMissingJWTSecret
	}
	if c.Stats.Window <= 0 {
		return fmt.Errorf("stats.window must be positive, got %d", c.Stats.Window)
	}
	if _, err := c.StatsLocation(); err != nil {
		return err
	}
	return nil
}

// StatsLocation resolves the display time zone of the stats labels.
func (c Config) StatsLocation() (*time.Location, error) {
	if c.Stats.Location == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Stats.Location)
	if err != nil {
		return nil, fmt.Errorf("stats.location: %w", err)
	}
	return loc, nil
}
