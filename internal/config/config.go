package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ProfilePolicy controls what the guard does with a session that has a
// token but no loaded user profile when a route declares a role
// requirement. "block" treats the requirement as unmet; "allow" renders
// the page anyway (the historical behavior of the old web client).
type ProfilePolicy string

const (
	ProfileBlock ProfilePolicy = "block"
	ProfileAllow ProfilePolicy = "allow"
)

type Config struct {
	BindAddr       string
	BackendURL     string
	DatabaseURL    string
	SessionSecret  string
	SessionTTL     time.Duration
	ProfilePolicy  ProfilePolicy
	AllowedOrigins []string
	LoginRate      float64
	LoginBurst     int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	bind := getEnv("BIND_ADDR", ":8080")
	backend := getEnv("BACKEND_URL", "https://campus-community.onrender.com")

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	ttl := getEnvInt("SESSION_TTL_HOURS", 72)

	policy := ProfilePolicy(getEnv("GUARD_PROFILE_POLICY", string(ProfileBlock)))
	if policy != ProfileBlock && policy != ProfileAllow {
		return nil, fmt.Errorf("GUARD_PROFILE_POLICY must be %q or %q", ProfileBlock, ProfileAllow)
	}

	origins := strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	rateF := getEnvFloat("LOGIN_RATE", 2)
	burstN := getEnvInt("LOGIN_BURST", 10)

	return &Config{
		BindAddr:       bind,
		BackendURL:     strings.TrimRight(backend, "/"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SessionSecret:  secret,
		SessionTTL:     time.Duration(ttl) * time.Hour,
		ProfilePolicy:  policy,
		AllowedOrigins: origins,
		LoginRate:      rateF,
		LoginBurst:     burstN,
	}, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt falls back to the default on unset or unparseable values; a
// typo'd SESSION_TTL_HOURS must not become a zero-hour TTL.
func getEnvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvFloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
