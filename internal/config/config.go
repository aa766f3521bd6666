// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds the runtime settings of the service.  Required variables are
// enforced by must(); optional ones fall back to defaults.
type Config struct {
	Env                string  // application environment (dev/test/prod)
	Port               string  // HTTP port to listen on
	JWTSecret          string  // secret used to sign JWTs
	AccessTTLMin       int     // access token time-to-live in minutes
	RefreshTTLDays     int     // refresh token time-to-live in days
	BcryptCost         int     // bcrypt cost for password hashing
	PaymentSuccessRate float64 // probability a simulated payment is approved
	DataDir            string  // directory for the JSON snapshot store
	AMQPURL            string  // broker URL; empty disables publishing
	DBHost             string  // MySQL host; empty disables the SQL mirror
	DBPort             string  // MySQL port
	DBUser             string  // MySQL user
	DBPass             string  // MySQL password (optional)
	DBName             string  // MySQL database name
}

// Load reads the configuration.  Missing required variables abort startup
// with a fatal log message.
func Load() Config {
	return Config{
		Env:                getenv("APP_ENV", "dev"),
		Port:               must("APP_PORT"),
		JWTSecret:          must("JWT_SECRET"),
		AccessTTLMin:       atoiDefault("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTTLDays:     atoiDefault("REFRESH_TOKEN_TTL_DAYS", 7),
		BcryptCost:         atoiDefault("BCRYPT_COST", 10),
		PaymentSuccessRate: floatDefault("PAYMENT_SUCCESS_RATE", 0.95),
		DataDir:            getenv("DATA_DIR", "data"),
		AMQPURL:            amqpURL(),
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             getenv("DB_PORT", "3306"),
		DBUser:             getenv("DB_USER", "root"),
		DBPass:             os.Getenv("DB_PASS"),
		DBName:             getenv("DB_NAME", "eventia"),
	}
}

// MirrorToMySQL reports whether the SQL mirror should be opened.
func (c Config) MirrorToMySQL() bool { return c.DBHost != "" }

func amqpURL() string {
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		return v
	}
	return os.Getenv("AMQP_URL")
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

func floatDefault(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("invalid float for %s: %q", key, v)
	}
	return f
}
