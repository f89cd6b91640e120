package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is empty because every field carries its fully qualified
// SIDELINE_* variable name in its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names shared with tests and tooling.
const (
	EnvAppEnv            = "SIDELINE_APP_ENV"
	EnvPort              = "SIDELINE_APP_PORT"
	EnvDBDSN             = "SIDELINE_DB_DSN"
	EnvDBHost            = "SIDELINE_DB_HOST"
	EnvDBUser            = "SIDELINE_DB_USER"
	EnvDBName            = "SIDELINE_DB_NAME"
	EnvJWTSecret         = "SIDELINE_JWT_SECRET"
	EnvJWTIssuer         = "SIDELINE_JWT_ISSUER"
	EnvJWTExpMins        = "SIDELINE_JWT_EXPIRATION_MINUTES"
	EnvMasqueradeHashKey = "SIDELINE_MASQUERADE_HASH_KEY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Masquerade   MasqueradeConfig
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
	Env          string `envconfig:"SIDELINE_APP_ENV" required:"true"`
	Port         string `envconfig:"SIDELINE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SIDELINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SIDELINE_LOG_WARN_STACK" default:"false"`
	RootPath     string `envconfig:"SIDELINE_ROOT_PATH" default:"/"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SIDELINE_DB_DSN"`
	Driver string `envconfig:"SIDELINE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SIDELINE_DB_HOST"`
	LegacyPort     int    `envconfig:"SIDELINE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SIDELINE_DB_USER"`
	LegacyPassword string `envconfig:"SIDELINE_DB_PASSWORD"`
	LegacyName     string `envconfig:"SIDELINE_DB_NAME"`
	LegacySSLMode  string `envconfig:"SIDELINE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SIDELINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SIDELINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SIDELINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SIDELINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SIDELINE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SIDELINE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SIDELINE_JWT_EXPIRATION_MINUTES" required:"true"`
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SIDELINE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SIDELINE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SIDELINE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SIDELINE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SIDELINE_ARGON_KEY_LEN" default:"32"`
}

// MasqueradeConfig drives the signed cookie that carries the masquerade
// marker between requests.
type MasqueradeConfig struct {
	CookieName   string        `envconfig:"SIDELINE_MASQUERADE_COOKIE_NAME" default:"sideline_masquerade_user"`
	HashKey      string        `envconfig:"SIDELINE_MASQUERADE_HASH_KEY" required:"true"`
	CookieMaxAge time.Duration `envconfig:"SIDELINE_MASQUERADE_COOKIE_MAX_AGE" default:"12h"`
	CookieSecure bool          `envconfig:"SIDELINE_MASQUERADE_COOKIE_SECURE" default:"true"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SIDELINE_AUTO_MIGRATE" default:"false"`
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
