package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Intake       IntakeConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VELURE_APP_ENV" required:"true"`
	Port         string `envconfig:"VELURE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VELURE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VELURE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"VELURE_DB_DSN"`
	Driver string `envconfig:"VELURE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VELURE_DB_HOST"`
	LegacyPort     int    `envconfig:"VELURE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VELURE_DB_USER"`
	LegacyPassword string `envconfig:"VELURE_DB_PASSWORD"`
	LegacyName     string `envconfig:"VELURE_DB_NAME"`
	LegacySSLMode  string `envconfig:"VELURE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VELURE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VELURE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VELURE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VELURE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VELURE_REDIS_URL"`
	Address      string        `envconfig:"VELURE_REDIS_ADDR"`
	Password     string        `envconfig:"VELURE_REDIS_PASSWORD"`
	DB           int           `envconfig:"VELURE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VELURE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VELURE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VELURE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VELURE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VELURE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// IntakeConfig tunes the purchase-intent pipeline.
type IntakeConfig struct {
	// MergeWindow is how far back an existing order from the same phone
	// number is still considered the same shopping session.
	MergeWindow time.Duration `envconfig:"VELURE_INTAKE_MERGE_WINDOW" default:"1h"`
	// DisplayPrefix prefixes the customer-facing sequential order id.
	DisplayPrefix string `envconfig:"VELURE_INTAKE_DISPLAY_PREFIX" default:"#QE"`
	// RecentScanLimit caps how many recent orders per phone are scanned for a
	// merge target.
	RecentScanLimit int           `envconfig:"VELURE_INTAKE_RECENT_SCAN_LIMIT" default:"20"`
	LockTTL         time.Duration `envconfig:"VELURE_INTAKE_LOCK_TTL" default:"5s"`

	RateLimitWindow     time.Duration `envconfig:"VELURE_INTAKE_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitIPLimit    int           `envconfig:"VELURE_INTAKE_RATE_LIMIT_IP_LIMIT" default:"30"`
	RateLimitPhoneLimit int           `envconfig:"VELURE_INTAKE_RATE_LIMIT_PHONE_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"VELURE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"VELURE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
