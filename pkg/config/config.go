package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable the app reads.
const EnvPrefix = "HRDEP"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Config aggregates every injectable setting; constructors receive the
// sub-structs they need rather than reading the process environment.
type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Stripe        StripeConfig
	Google        GoogleConfig
	SMTP          SMTPConfig
	Checkout      CheckoutConfig
	FeatureFlags  FeatureFlagsConfig
}

// Load parses the environment into a Config.
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
	Env         string `envconfig:"HRDEP_APP_ENV" default:"dev"`
	Port        string `envconfig:"HRDEP_APP_PORT" default:"3000"`
	LogLevel    string `envconfig:"HRDEP_LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"HRDEP_LOG_FORMAT" default:"json"`
	BaseURL     string `envconfig:"HRDEP_BASE_URL" default:"http://localhost:3000"`
	FrontendURL string `envconfig:"HRDEP_FRONTEND_URL" default:"http://localhost:5500"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"HRDEP_DB_DSN"`
	Driver string `envconfig:"HRDEP_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"HRDEP_DB_HOST"`
	Port     int    `envconfig:"HRDEP_DB_PORT" default:"5432"`
	User     string `envconfig:"HRDEP_DB_USER"`
	Password string `envconfig:"HRDEP_DB_PASSWORD"`
	Name     string `envconfig:"HRDEP_DB_NAME"`
	SSLMode  string `envconfig:"HRDEP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HRDEP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HRDEP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HRDEP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HRDEP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HRDEP_REDIS_URL"`
	Address      string        `envconfig:"HRDEP_REDIS_ADDR"`
	Password     string        `envconfig:"HRDEP_REDIS_PASSWORD"`
	DB           int           `envconfig:"HRDEP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HRDEP_REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"HRDEP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HRDEP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HRDEP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint is configured at all; rate
// limiting degrades to a pass-through when it is not.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret           string        `envconfig:"HRDEP_JWT_SECRET" required:"true"`
	Issuer           string        `envconfig:"HRDEP_JWT_ISSUER" default:"hr-dep"`
	SessionTTL       time.Duration `envconfig:"HRDEP_JWT_SESSION_TTL" default:"1h"`
	PasswordResetTTL time.Duration `envconfig:"HRDEP_JWT_RESET_TTL" default:"15m"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"HRDEP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"HRDEP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"HRDEP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"HRDEP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"HRDEP_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"HRDEP_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"HRDEP_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"HRDEP_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"HRDEP_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"HRDEP_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"HRDEP_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type StripeConfig struct {
	SecretKey string `envconfig:"HRDEP_STRIPE_SECRET_KEY"`
	Env       string `envconfig:"HRDEP_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type GoogleConfig struct {
	ClientID     string `envconfig:"HRDEP_GOOGLE_CLIENT_ID"`
	ClientSecret string `envconfig:"HRDEP_GOOGLE_CLIENT_SECRET"`
	CallbackURL  string `envconfig:"HRDEP_GOOGLE_CALLBACK_URL"`
}

// Configured reports whether Google sign-in credentials are present.
func (g GoogleConfig) Configured() bool {
	return g.ClientID != ""
}

type SMTPConfig struct {
	Host     string `envconfig:"HRDEP_SMTP_HOST"`
	Port     int    `envconfig:"HRDEP_SMTP_PORT" default:"587"`
	Username string `envconfig:"HRDEP_SMTP_USERNAME"`
	Password string `envconfig:"HRDEP_SMTP_PASSWORD"`
	From     string `envconfig:"HRDEP_SMTP_FROM"`
}

// Configured reports whether an outbound mail relay is set up; password
// reset emails are refused when it is not.
func (s SMTPConfig) Configured() bool {
	return s.Host != "" && s.From != ""
}

type CheckoutConfig struct {
	Currency string `envconfig:"HRDEP_CHECKOUT_CURRENCY" default:"usd"`
	Country  string `envconfig:"HRDEP_CHECKOUT_COUNTRY" default:"US"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"HRDEP_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for env, value := range map[string]string{
		"HRDEP_DB_HOST": db.Host,
		"HRDEP_DB_USER": db.User,
		"HRDEP_DB_NAME": db.Name,
	} {
		if value == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either HRDEP_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
