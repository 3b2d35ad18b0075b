package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	CORSOrigins []string

	KafkaBrokers string
	KafkaTopic   string
	KafkaGroupID string

	// Menu document in R2; empty MenuObjectKey means the built-in menu.
	MenuObjectKey string
	R2            R2Config

	StaffUsername string
	StaffPassword string

	PreparingDelay    time.Duration
	CountdownInterval time.Duration
}

type R2Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

func (c R2Config) Complete() bool {
	return c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != "" && c.Bucket != ""
}

// Load reads the environment. Only JWT_SECRET is mandatory; everything else
// has a default or switches a feature off.
func Load() (*Config, error) {
	if os.Getenv("JWT_SECRET") == "" {
		return nil, errors.New("missing env var: JWT_SECRET")
	}

	cfg := &Config{
		Env:           getenv("APP_ENV", "development"),
		Port:          getenv("PORT", "8000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		CORSOrigins:   splitList(getenv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		KafkaBrokers:  os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:    getenv("KAFKA_TOPIC", "order-events"),
		KafkaGroupID:  getenv("KAFKA_GROUP_ID", "kitchen-feed"),
		MenuObjectKey: os.Getenv("MENU_OBJECT_KEY"),
		R2: R2Config{
			Endpoint:  os.Getenv("R2_ENDPOINT"),
			AccessKey: os.Getenv("R2_ACCESS_KEY"),
			SecretKey: os.Getenv("R2_SECRET_KEY"),
			Bucket:    os.Getenv("R2_BUCKET_NAME"),
		},
		StaffUsername: os.Getenv("STAFF_USERNAME"),
		StaffPassword: os.Getenv("STAFF_PASSWORD_HASH"),
	}

	var err error
	if cfg.PreparingDelay, err = duration("PREPARING_DELAY", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.CountdownInterval, err = duration("COUNTDOWN_INTERVAL", time.Minute); err != nil {
		return nil, err
	}

	if cfg.MenuObjectKey != "" && !cfg.R2.Complete() {
		return nil, errors.New("MENU_OBJECT_KEY set but R2_ENDPOINT, R2_ACCESS_KEY, R2_SECRET_KEY or R2_BUCKET_NAME missing")
	}

	return cfg, nil
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: want a positive duration like 5s", key, v)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
