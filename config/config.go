package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `env:"TUTOR_ENV" envDefault:"dev"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	DataDir  string `env:"DATA_DIR" envDefault:"."`
	API      API
	Postgres Postgres
}

type API struct {
	Debug        bool          `env:"API_DEBUG"`
	Timeout      time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	AlphaVantage AlphaVantage
}

type AlphaVantage struct {
	URL string `env:"ALPHAVANTAGE_URL" envDefault:"https://www.alphavantage.co"`
	Key string `env:"ALPHAVANTAGE_API_KEY"`
}

// Postgres configures the optional local price-history database. When URL is
// empty, prices come from the Alpha Vantage API instead.
type Postgres struct {
	URL string `env:"PG_URL"`
}

func MustLoad() *Config {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %s", err)
	}
	return cfg
}
