package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	MigrationsPath string
	DBTimeout      time.Duration

	// Application session (custom-session cookie)
	SessionSecret string
	SessionIssuer string
	SessionMaxAge time.Duration
	CookieSecure  bool
	CookieDomain  string

	// PasswordHashCost is the bcrypt cost for local-account passwords.
	PasswordHashCost int

	// Managed auth provider
	AuthProviderTokenURL     string
	AuthProviderUserURL      string
	AuthProviderClientID     string
	AuthProviderClientSecret string
	AuthProviderAPIKey       string
	AuthProviderTimeout      time.Duration

	// External OAuth Providers
	GoogleClientID  string `mapstructure:"GOOGLE_CLIENT_ID"`
	FrontendBaseURL string `mapstructure:"FRONTEND_BASE_URL"`

	RedisURL       string
	LoginRateLimit string
	PosthogAPIKey  string

	// TransferDefaultEntityID attributes transfer rows when a request names no entity.
	TransferDefaultEntityID string
}

// ProviderEnabled reports whether the managed auth provider is configured.
func (c *Config) ProviderEnabled() bool {
	return c.AuthProviderTokenURL != ""
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("DB_TIMEOUT", "5s")
	viper.SetDefault("SESSION_SECRET", "")
	viper.SetDefault("SESSION_ISSUER", "fin-manager-app")
	viper.SetDefault("SESSION_MAX_AGE", "168h")
	viper.SetDefault("COOKIE_SECURE", false)
	viper.SetDefault("COOKIE_DOMAIN", "")
	viper.SetDefault("PASSWORD_HASH_COST", 10)
	viper.SetDefault("AUTH_PROVIDER_TOKEN_URL", "")
	viper.SetDefault("AUTH_PROVIDER_USER_URL", "")
	viper.SetDefault("AUTH_PROVIDER_CLIENT_ID", "")
	viper.SetDefault("AUTH_PROVIDER_CLIENT_SECRET", "")
	viper.SetDefault("AUTH_PROVIDER_API_KEY", "")
	viper.SetDefault("AUTH_PROVIDER_TIMEOUT", "10s")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("TRANSFER_DEFAULT_ENTITY_ID", "")

	// Environment variables override defaults and .env values.
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
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.DBTimeout = parseDuration("DB_TIMEOUT", 5*time.Second)

	cfg.SessionSecret = viper.GetString("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: SESSION_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.SessionIssuer = viper.GetString("SESSION_ISSUER")
	cfg.SessionMaxAge = parseDuration("SESSION_MAX_AGE", 7*24*time.Hour)
	cfg.CookieSecure = viper.GetBool("COOKIE_SECURE") || cfg.IsProduction
	cfg.CookieDomain = viper.GetString("COOKIE_DOMAIN")
	cfg.PasswordHashCost = viper.GetInt("PASSWORD_HASH_COST")

	cfg.AuthProviderTokenURL = viper.GetString("AUTH_PROVIDER_TOKEN_URL")
	cfg.AuthProviderUserURL = viper.GetString("AUTH_PROVIDER_USER_URL")
	cfg.AuthProviderClientID = viper.GetString("AUTH_PROVIDER_CLIENT_ID")
	cfg.AuthProviderClientSecret = viper.GetString("AUTH_PROVIDER_CLIENT_SECRET")
	cfg.AuthProviderAPIKey = viper.GetString("AUTH_PROVIDER_API_KEY")
	cfg.AuthProviderTimeout = parseDuration("AUTH_PROVIDER_TIMEOUT", 10*time.Second)
	if !cfg.ProviderEnabled() {
		log.Println("Warning: AUTH_PROVIDER_TOKEN_URL not set. Managed provider login is disabled.")
	} else if cfg.AuthProviderUserURL == "" {
		log.Println("Warning: AUTH_PROVIDER_USER_URL not set. Provider sessions cannot be resolved.")
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}
	cfg.FrontendBaseURL = strings.TrimRight(viper.GetString("FRONTEND_BASE_URL"), "/")

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.TransferDefaultEntityID = viper.GetString("TRANSFER_DEFAULT_ENTITY_ID")

	return cfg, nil
}

// parseDuration reads key as a duration (e.g. "60m", "1h"), falling back to def.
func parseDuration(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}
