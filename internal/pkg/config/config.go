package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Store     StoreConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Booking   BookingConfig
	Pricing   PricingConfig
	Sweeper   SweeperConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Payment   PaymentConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Ho_Chi_Minh"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Ho_Chi_Minh"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"25200"` // 7*60*60
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
}

type BookingConfig struct {
	PaymentTimeout time.Duration `envconfig:"BOOKING_PAYMENT_TIMEOUT" default:"30m"`
	IdempotencyTTL time.Duration `envconfig:"BOOKING_IDEMPOTENCY_TTL" default:"24h"`
	CodePrefix     string        `envconfig:"BOOKING_CODE_PREFIX" default:"BK"`
	// TimeZone decides which calendar date "today" is for check-in, no-show and cancellation rules.
	TimeZone string `envconfig:"BOOKING_TIMEZONE" default:"Asia/Ho_Chi_Minh"`
}

func (c BookingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_TIMEZONE: %w", err)
	}
	return loc, nil
}

type PricingConfig struct {
	ServiceFeePercent string `envconfig:"PRICING_SERVICE_FEE_PERCENT" default:"5"`
	ServiceFeeFixed   string `envconfig:"PRICING_SERVICE_FEE_FIXED" default:"0"`
	TaxPercent        string `envconfig:"PRICING_TAX_PERCENT" default:"10"`
}

type SweeperConfig struct {
	Enabled   bool          `envconfig:"SWEEPER_ENABLED" default:"true"`
	Interval  time.Duration `envconfig:"SWEEPER_INTERVAL" default:"2m"`
	BatchSize int           `envconfig:"SWEEPER_BATCH_SIZE" default:"100"`
	LockTTL   time.Duration `envconfig:"SWEEPER_LOCK_TTL" default:"90s"`
}

// Addr empty means the sweeper falls back to an in-process lock.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:""`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type RateLimitConfig struct {
	BookingRPS   float64 `envconfig:"RATE_LIMIT_BOOKING_RPS" default:"5"`
	BookingBurst int     `envconfig:"RATE_LIMIT_BOOKING_BURST" default:"10"`
}

type PaymentConfig struct {
	CallbackSecret string `envconfig:"PAYMENT_CALLBACK_SECRET" required:"true"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// Fees are kept as strings in the environment so they never pass through float parsing.
func (c PricingConfig) Decimals() (serviceFeePercent, serviceFeeFixed, taxPercent decimal.Decimal, err error) {
	if serviceFeePercent, err = decimal.NewFromString(c.ServiceFeePercent); err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, fmt.Errorf("invalid PRICING_SERVICE_FEE_PERCENT: %w", err)
	}
	if serviceFeeFixed, err = decimal.NewFromString(c.ServiceFeeFixed); err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, fmt.Errorf("invalid PRICING_SERVICE_FEE_FIXED: %w", err)
	}
	if taxPercent, err = decimal.NewFromString(c.TaxPercent); err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, fmt.Errorf("invalid PRICING_TAX_PERCENT: %w", err)
	}
	return serviceFeePercent, serviceFeeFixed, taxPercent, nil
}

func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.Store.Driver != StoreDriverPostgres && cfg.Store.Driver != StoreDriverMemory {
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Store.Driver)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Ho_Chi_Minh",
			MaxConns: 20,
		},
		Store: StoreConfig{Driver: StoreDriverPostgres},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Ho_Chi_Minh",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 25200,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: time.Hour,
		},
		Booking: BookingConfig{
			PaymentTimeout: 30 * time.Minute,
			IdempotencyTTL: 24 * time.Hour,
			CodePrefix:     "BK",
			TimeZone:       "Asia/Ho_Chi_Minh",
		},
		Pricing: PricingConfig{
			ServiceFeePercent: "0",
			ServiceFeeFixed:   "0",
			TaxPercent:        "0",
		},
		Sweeper: SweeperConfig{
			Enabled:   false,
			Interval:  time.Minute,
			BatchSize: 100,
			LockTTL:   time.Minute,
		},
		RateLimit: RateLimitConfig{
			BookingRPS:   1000,
			BookingBurst: 1000,
		},
		Payment: PaymentConfig{
			CallbackSecret: "test-callback-secret",
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
			MaxAge:       12 * time.Hour,
		},
	}
}
