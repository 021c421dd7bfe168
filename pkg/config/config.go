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
	Admin        AdminConfig
	Textlink     TextlinkConfig
	OTPRateLimit OTPRateLimitConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"RAVETAG_APP_ENV" required:"true"`
	Port         string `envconfig:"RAVETAG_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"RAVETAG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RAVETAG_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"RAVETAG_DB_DSN"`
	Driver string `envconfig:"RAVETAG_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"RAVETAG_DB_HOST"`
	LegacyPort     int    `envconfig:"RAVETAG_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"RAVETAG_DB_USER"`
	LegacyPassword string `envconfig:"RAVETAG_DB_PASSWORD"`
	LegacyName     string `envconfig:"RAVETAG_DB_NAME"`
	LegacySSLMode  string `envconfig:"RAVETAG_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RAVETAG_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RAVETAG_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RAVETAG_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RAVETAG_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RAVETAG_REDIS_URL" required:"true"`
	Address      string        `envconfig:"RAVETAG_REDIS_ADDR"`
	Password     string        `envconfig:"RAVETAG_REDIS_PASSWORD"`
	DB           int           `envconfig:"RAVETAG_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RAVETAG_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RAVETAG_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RAVETAG_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RAVETAG_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RAVETAG_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AdminConfig carries the shared secret gating privileged endpoints.
type AdminConfig struct {
	Token string `envconfig:"RAVETAG_ADMIN_TOKEN" required:"true"`
}

type TextlinkConfig struct {
	APIKey        string        `envconfig:"RAVETAG_TEXTLINK_API_KEY"`
	BaseURL       string        `envconfig:"RAVETAG_TEXTLINK_BASE_URL"`
	ServiceName   string        `envconfig:"RAVETAG_TEXTLINK_SERVICE_NAME" default:"RaveTag"`
	SourceCountry string        `envconfig:"RAVETAG_TEXTLINK_SOURCE_COUNTRY" default:"BD"`
	CodeExpiry    time.Duration `envconfig:"RAVETAG_TEXTLINK_CODE_EXPIRY" default:"10m"`
}

type OTPRateLimitConfig struct {
	SendWindow       time.Duration `envconfig:"RAVETAG_OTP_RATE_LIMIT_SEND_WINDOW" default:"10m"`
	SendPhoneLimit   int           `envconfig:"RAVETAG_OTP_RATE_LIMIT_SEND_PHONE_LIMIT" default:"3"`
	SendIPLimit      int           `envconfig:"RAVETAG_OTP_RATE_LIMIT_SEND_IP_LIMIT" default:"10"`
	VerifyWindow     time.Duration `envconfig:"RAVETAG_OTP_RATE_LIMIT_VERIFY_WINDOW" default:"10m"`
	VerifyPhoneLimit int           `envconfig:"RAVETAG_OTP_RATE_LIMIT_VERIFY_PHONE_LIMIT" default:"10"`
	VerifyIPLimit    int           `envconfig:"RAVETAG_OTP_RATE_LIMIT_VERIFY_IP_LIMIT" default:"30"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"RAVETAG_CORS_ALLOWED_ORIGINS"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"RAVETAG_AUTO_MIGRATE" default:"false"`
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
