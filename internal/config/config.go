package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the service reads from the environment.
type Config struct {
	AppEnv   string
	HTTPAddr string

	DatabaseURL string
	RedisURL    string

	JWTSecret        string
	ShareTokenSecret string
	TokenTTL         time.Duration
	FrontendBaseURL  string
	CORSOrigins      []string

	GeminiAPIKey string
	GeminiModel  string

	GoogleCredentialsFile string

	PinataJWT     string
	PinataGateway string

	EthRPCURL string
}

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("TOKEN_TTL_MINUTES", 30)
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash-lite")
	v.SetDefault("PINATA_GATEWAY", "https://gateway.pinata.cloud/ipfs")
	v.SetDefault("CORS_ORIGINS", "*")

	dsn := v.GetString("DATABASE_URL")
	if dsn == "" {
		dsn = v.GetString("DB_URL")
	}

	cfg := &Config{
		AppEnv:                v.GetString("APP_ENV"),
		HTTPAddr:              v.GetString("HTTP_ADDR"),
		DatabaseURL:           dsn,
		RedisURL:              v.GetString("REDIS_URL"),
		JWTSecret:             v.GetString("JWT_SECRET"),
		ShareTokenSecret:      v.GetString("SHARE_TOKEN_SECRET"),
		TokenTTL:              time.Duration(v.GetInt("TOKEN_TTL_MINUTES")) * time.Minute,
		FrontendBaseURL:       strings.TrimRight(v.GetString("FRONTEND_BASE_URL"), "/"),
		CORSOrigins:           splitList(v.GetString("CORS_ORIGINS")),
		GeminiAPIKey:          v.GetString("GEMINI_API_KEY"),
		GeminiModel:           v.GetString("GEMINI_MODEL"),
		GoogleCredentialsFile: v.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
		PinataJWT:             v.GetString("PINATA_JWT"),
		PinataGateway:         strings.TrimRight(v.GetString("PINATA_GATEWAY"), "/"),
		EthRPCURL:             v.GetString("ETH_RPC_URL"),
	}
	if cfg.ShareTokenSecret == "" {
		cfg.ShareTokenSecret = cfg.JWTSecret
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 30 * time.Minute
	}
	return cfg, nil
}

// RequireDatabase fails when no DSN was configured.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	return nil
}

func (c *Config) Production() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
