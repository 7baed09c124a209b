package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DataDir  string
	SeedFile string

	// Outbound provider. An empty access token puts the messenger in mock
	// mode; an empty from-number fails each send early.
	WAFromNumber  string
	WAAPIBaseURL  string
	WAAccessToken string

	// Deploy-time completion credential, the last tier of the fallback
	// chain. Per-business overrides and stored keys take precedence.
	OpenAIAPIKey string
	OpenAIModel  string

	DefaultLocale string
}

func Load() (*Config, error) {
	// .env is optional — env vars may already be set (e.g. in production)
	_ = godotenv.Load()

	cfg := &Config{
		Port:          os.Getenv("PORT"),
		DataDir:       os.Getenv("DATA_DIR"),
		SeedFile:      os.Getenv("SEED_FILE"),
		WAFromNumber:  os.Getenv("WA_FROM_NUMBER"),
		WAAPIBaseURL:  os.Getenv("WA_API_BASE_URL"),
		WAAccessToken: os.Getenv("WA_ACCESS_TOKEN"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),
		DefaultLocale: os.Getenv("DEFAULT_LOCALE"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = "he"
	}

	return cfg, nil
}
