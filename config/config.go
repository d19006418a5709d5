package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"development"`
	Port       string `env:"PORT" envDefault:"8080"`
	DBURL      string `env:"DB_URL,required,notEmpty"`
	JWTSecret  string `env:"JWT_SECRET,required,notEmpty"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost:5173"`

	// Optional. When empty the localized menu is cached in process memory.
	RedisURL     string        `env:"REDIS_URL"`
	MenuCacheTTL time.Duration `env:"MENU_CACHE_TTL" envDefault:"2m"`

	TranslationTimeout      time.Duration `env:"TRANSLATION_TIMEOUT" envDefault:"15s"`
	TranslateAllConcurrency int           `env:"TRANSLATE_ALL_CONCURRENCY" envDefault:"4"`
	TranslateRPS            float64       `env:"TRANSLATE_RPS" envDefault:"5"`

	GoogleTranslateURL string `env:"GOOGLE_TRANSLATE_URL" envDefault:"https://translation.googleapis.com/language/translate/v2"`
	DeepLURL           string `env:"DEEPL_URL" envDefault:"https://api-free.deepl.com/v2/translate"`
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}
	return parse()
}

func parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes, got %d", len(c.JWTSecret))
	}
	if c.TranslationTimeout <= 0 {
		return fmt.Errorf("TRANSLATION_TIMEOUT must be positive")
	}
	if c.TranslateAllConcurrency < 1 {
		return fmt.Errorf("TRANSLATE_ALL_CONCURRENCY must be at least 1")
	}
	if c.TranslateRPS <= 0 {
		return fmt.Errorf("TRANSLATE_RPS must be positive")
	}
	if c.MenuCacheTTL < 0 {
		return fmt.Errorf("MENU_CACHE_TTL must not be negative")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// CORSOrigins splits CORS_ORIGIN on commas.
func (c *Config) CORSOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
