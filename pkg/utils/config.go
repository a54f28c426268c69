package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Services  ServicesConfig
	Booking   BookingConfig
	Payment   PaymentConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Driver   string // postgres | sqlite (gorm-backed services only)
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
	// DSN overrides the individual fields when set. For sqlite it is the file path.
	DSN string
}

// ServicesConfig holds the addresses of the collaborating services and the
// timeout applied to every outbound call.
type ServicesConfig struct {
	PaymentURL      string
	NotificationURL string
	BookingURL      string
	Timeout         time.Duration
}

type BookingConfig struct {
	Currency string
	Timezone string
	Store    string // postgres | memory
	// Seed inserts a demo room and guest at startup.
	Seed bool
}

type PaymentConfig struct {
	// FailAbove makes the charge simulator fail every amount strictly above it.
	// Zero disables simulated failures.
	FailAbove     decimal.Decimal
	FailureReason string
}

type SecurityConfig struct {
	// ServiceToken is sent on outbound calls to other services.
	ServiceToken string
	// ServiceTokenHash is the bcrypt hash inbound service calls are checked against.
	// Empty disables the check.
	ServiceTokenHash string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// LoadConfig reads the configuration of one service. Values come from an optional
// .env file in the working directory and from environment variables prefixed with
// the service name (BOOKING_PORT, PAYMENT_DB_HOST, ...), the latter taking precedence.
func LoadConfig(service string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.SetEnvPrefix(strings.ToUpper(service))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("APP_NAME", service+"-service")
	v.SetDefault("PORT", defaultPort(service))
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", service)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("PAYMENT_SERVICE_URL", "http://localhost:8082")
	v.SetDefault("NOTIFICATION_SERVICE_URL", "http://localhost:8083")
	v.SetDefault("BOOKING_SERVICE_URL", "http://localhost:8000")
	v.SetDefault("SERVICE_TIMEOUT", "10s")
	v.SetDefault("CURRENCY", "RUB")
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("STORE", "postgres")
	v.SetDefault("SEED", false)
	v.SetDefault("FAIL_ABOVE", "0")
	v.SetDefault("FAILURE_REASON", "card declined")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	failAbove, err := decimal.NewFromString(v.GetString("FAIL_ABOVE"))
	if err != nil {
		return nil, errors.New("FAIL_ABOVE must be a decimal number")
	}

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Driver:   v.GetString("DB_DRIVER"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
			DSN:      v.GetString("DB_DSN"),
		},
		Services: ServicesConfig{
			PaymentURL:      v.GetString("PAYMENT_SERVICE_URL"),
			NotificationURL: v.GetString("NOTIFICATION_SERVICE_URL"),
			BookingURL:      v.GetString("BOOKING_SERVICE_URL"),
			Timeout:         v.GetDuration("SERVICE_TIMEOUT"),
		},
		Booking: BookingConfig{
			Currency: v.GetString("CURRENCY"),
			Timezone: v.GetString("TIMEZONE"),
			Store:    v.GetString("STORE"),
			Seed:     v.GetBool("SEED"),
		},
		Payment: PaymentConfig{
			FailAbove:     failAbove,
			FailureReason: v.GetString("FAILURE_REASON"),
		},
		Security: SecurityConfig{
			ServiceToken:     v.GetString("SERVICE_TOKEN"),
			ServiceTokenHash: v.GetString("SERVICE_TOKEN_HASH"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}

func defaultPort(service string) string {
	switch service {
	case "payment":
		return "8082"
	case "notification":
		return "8083"
	default:
		return "8000"
	}
}
