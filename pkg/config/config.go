package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	CORS          CORSConfig
	Sendgrid      SendgridConfig
	Cron          CronConfig
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
	Env          string `envconfig:"MOTOCLUBS_APP_ENV" required:"true"`
	Port         string `envconfig:"MOTOCLUBS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MOTOCLUBS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MOTOCLUBS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"MOTOCLUBS_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"MOTOCLUBS_DB_DSN"`
	Driver string `envconfig:"MOTOCLUBS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MOTOCLUBS_DB_HOST"`
	LegacyPort     int    `envconfig:"MOTOCLUBS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MOTOCLUBS_DB_USER"`
	LegacyPassword string `envconfig:"MOTOCLUBS_DB_PASSWORD"`
	LegacyName     string `envconfig:"MOTOCLUBS_DB_NAME"`
	LegacySSLMode  string `envconfig:"MOTOCLUBS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MOTOCLUBS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MOTOCLUBS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MOTOCLUBS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MOTOCLUBS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MOTOCLUBS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MOTOCLUBS_REDIS_ADDR"`
	Password     string        `envconfig:"MOTOCLUBS_REDIS_PASSWORD"`
	DB           int           `envconfig:"MOTOCLUBS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MOTOCLUBS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MOTOCLUBS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MOTOCLUBS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MOTOCLUBS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MOTOCLUBS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"MOTOCLUBS_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"MOTOCLUBS_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"MOTOCLUBS_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"MOTOCLUBS_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MOTOCLUBS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MOTOCLUBS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MOTOCLUBS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MOTOCLUBS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MOTOCLUBS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"MOTOCLUBS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"MOTOCLUBS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"MOTOCLUBS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"MOTOCLUBS_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"MOTOCLUBS_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"MOTOCLUBS_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MOTOCLUBS_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"MOTOCLUBS_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type SendgridConfig struct {
	APIKey      string `envconfig:"MOTOCLUBS_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"MOTOCLUBS_SENDGRID_FROM_EMAIL"`
	FromName    string `envconfig:"MOTOCLUBS_SENDGRID_FROM_NAME" default:"Moto Clubs Directory"`
}

// Enabled reports whether outbound email is configured at all.
func (s SendgridConfig) Enabled() bool {
	return strings.TrimSpace(s.APIKey) != "" && strings.TrimSpace(s.DefaultFrom) != ""
}

type CronConfig struct {
	Interval                  time.Duration `envconfig:"MOTOCLUBS_CRON_INTERVAL" default:"24h"`
	NotificationRetentionDays int           `envconfig:"MOTOCLUBS_CRON_NOTIFICATION_RETENTION_DAYS" default:"30"`
	ClaimExpiryDays           int           `envconfig:"MOTOCLUBS_CRON_CLAIM_EXPIRY_DAYS" default:"60"`
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
