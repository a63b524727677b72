package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// Branding assets for report exports. Empty URLs disable the asset.
	BrandingHeaderURL    string `mapstructure:"BRANDING_HEADER_URL"`
	BrandingFooterURL    string `mapstructure:"BRANDING_FOOTER_URL"`
	BrandingWatermarkURL string `mapstructure:"BRANDING_WATERMARK_URL"`
	BrandingFetchTimeout time.Duration

	// ExportRateLimit is an ulule/limiter formatted rate (e.g. "10-M").
	ExportRateLimit string `mapstructure:"EXPORT_RATE_LIMIT"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("BRANDING_HEADER_URL", "")
	viper.SetDefault("BRANDING_FOOTER_URL", "")
	viper.SetDefault("BRANDING_WATERMARK_URL", "")
	viper.SetDefault("BRANDING_FETCH_TIMEOUT", "10s")
	viper.SetDefault("EXPORT_RATE_LIMIT", "10-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.BrandingHeaderURL = viper.GetString("BRANDING_HEADER_URL")
	cfg.BrandingFooterURL = viper.GetString("BRANDING_FOOTER_URL")
	cfg.BrandingWatermarkURL = viper.GetString("BRANDING_WATERMARK_URL")

	timeoutStr := viper.GetString("BRANDING_FETCH_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Printf("Warning: Invalid value for BRANDING_FETCH_TIMEOUT ('%s'). Defaulting to 10s.\n", timeoutStr)
		timeout = 10 * time.Second
	}
	cfg.BrandingFetchTimeout = timeout

	cfg.ExportRateLimit = viper.GetString("EXPORT_RATE_LIMIT")

	return cfg, nil
}
