package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config is populated from the environment. main loads .env first via godotenv.
type Config struct {
	Env         string   `env:"APP_ENV" envDefault:"development"`
	Port        string   `env:"PORT" envDefault:"4000"`
	DatabaseURL string   `env:"DATABASE_URL"`
	JWTSecret   string   `env:"JWT_SECRET"`
	FrontendURL string   `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	BackendURL  string   `env:"BACKEND_URL" envDefault:"http://localhost:4000"`
	UploadsDir  string   `env:"UPLOADS_DIR" envDefault:"./uploads"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	Seller Seller `envPrefix:"SELLER_"`
	Stripe Stripe `envPrefix:"STRIPE_"`
	Google Google `envPrefix:"GOOGLE_"`
}

// Seller is the single shared seller credential. There is no per-seller
// account model; whoever holds this credential is "the seller".
type Seller struct {
	Email    string `env:"EMAIL"`
	Password string `env:"PASSWORD"`
}

type Stripe struct {
	SecretKey     string `env:"SECRET_KEY"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
}

type Google struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config from env: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
