package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port string
	Env  string

	// MongoDB
	MongoURI            string
	MongoDatabase       string
	MongoConnectTimeout time.Duration

	// Auth
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
}

// Load reads .env (if present) and the environment into a Config
func Load() *Config {
	// Missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "3003")
	v.SetDefault("ENV", "development")
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "bloglist")
	v.SetDefault("TEST_MONGODB_DATABASE", "bloglist_test")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")
	v.SetDefault("TOKEN_TTL", "1h")
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.AutomaticEnv()

	cfg := &Config{
		Port:                v.GetString("PORT"),
		Env:                 v.GetString("ENV"),
		MongoURI:            v.GetString("MONGODB_URI"),
		MongoDatabase:       v.GetString("MONGODB_DATABASE"),
		MongoConnectTimeout: parseDuration(v.GetString("MONGO_CONNECT_TIMEOUT"), 10*time.Second),
		Secret:              v.GetString("SECRET"),
		TokenTTL:            parseDuration(v.GetString("TOKEN_TTL"), time.Hour),
		BcryptCost:          v.GetInt("BCRYPT_COST"),
	}
	if cfg.Env == "test" {
		cfg.MongoDatabase = v.GetString("TEST_MONGODB_DATABASE")
	}
	if cfg.Secret == "" && cfg.Env == "development" {
		cfg.Secret = "dev-secret"
	}
	return cfg
}

// Validate reports missing or out-of-range settings
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must be set"))
	}
	if c.MongoURI == "" {
		errs = append(errs, errors.New("MONGODB_URI must be set"))
	}
	if c.MongoDatabase == "" {
		errs = append(errs, errors.New("MONGODB_DATABASE must be set"))
	}
	if c.Secret == "" {
		errs = append(errs, errors.New("SECRET must be set"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, errors.New("BCRYPT_COST out of range"))
	}
	return errors.Join(errs...)
}

func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}
