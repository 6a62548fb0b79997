package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// DefaultTaxRate is the VAT percentage applied when a request carries no
	// explicit rate.
	DefaultTaxRate decimal.Decimal
	// TaxonomyFile optionally points to a YAML file overriding the built-in
	// keyword taxonomy. Empty means built-in only.
	TaxonomyFile string
	// RateLimit is a limiter formatted rate, e.g. "100-M" for 100 requests
	// per minute per client.
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("DEFAULT_TAX_RATE", "20")
	viper.SetDefault("TAXONOMY_FILE", "")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	taxRateStr := viper.GetString("DEFAULT_TAX_RATE")
	taxRate, err := decimal.NewFromString(taxRateStr)
	if err != nil || taxRate.IsNegative() {
		taxRate = decimal.NewFromInt(20)
		log.Printf("Warning: Invalid value for DEFAULT_TAX_RATE ('%s'). Defaulting to %s.\n", taxRateStr, taxRate.String())
	}
	cfg.DefaultTaxRate = taxRate

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.TaxonomyFile = viper.GetString("TAXONOMY_FILE")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
