package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret   = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTIssuer   = "scaffold-erp"
	defaultWorkingDays = 26
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	LoginRateLimit    string
	CORSAllowedOrigin []string

	// Accounting / payroll
	CompanyCurrency    string
	PayrollWorkingDays int
	PostingRulesFile   string

	// Business event streaming. Empty KafkaBrokers keeps dispatch in-process.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string
}

// KafkaEnabled reports whether business events should go through Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("COMPANY_CURRENCY", "IDR")
	viper.SetDefault("PAYROLL_WORKING_DAYS", defaultWorkingDays)
	viper.SetDefault("POSTING_RULES_FILE", "")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "erp.business-events")
	viper.SetDefault("KAFKA_GROUP_ID", "erp-auto-posting")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.PayrollWorkingDays = viper.GetInt("PAYROLL_WORKING_DAYS")
	if cfg.PayrollWorkingDays <= 0 {
		log.Printf("Warning: Invalid PAYROLL_WORKING_DAYS (%d). Defaulting to %d.\n", cfg.PayrollWorkingDays, defaultWorkingDays)
		cfg.PayrollWorkingDays = defaultWorkingDays
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.CORSAllowedOrigin = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.CompanyCurrency = strings.ToUpper(viper.GetString("COMPANY_CURRENCY"))
	cfg.PostingRulesFile = viper.GetString("POSTING_RULES_FILE")
	cfg.KafkaBrokers = splitList(viper.GetString("KAFKA_BROKERS"))
	cfg.KafkaTopic = viper.GetString("KAFKA_TOPIC")
	cfg.KafkaGroupID = viper.GetString("KAFKA_GROUP_ID")

	return cfg, nil
}

// splitList turns "a, b,,c" into [a b c].
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
