package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Load reads .env into the environment if the file exists. Real environment
// variables always win over .env entries.
func Load() {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}
}

// Port the HTTP surface listens on
func Port() string {
	return getenv("PORT", "8080")
}

// StorePath is the sqlite file backing the record store
func StorePath() string {
	return getenv("STORE_PATH", "creatorlane.db")
}

// JWTSecret signs session tokens. The auth is cosmetic, so the default only
// needs to be stable, not secret.
func JWTSecret() []byte {
	return []byte(getenv("JWT_SECRET", "supersecret"))
}

// SimulatedDelay is how long mock backend calls (login, hire, payment)
// suspend before resolving. They always resolve, never time out.
func SimulatedDelay() time.Duration {
	ms := getenv("SIMULATED_DELAY_MS", "1000")
	v, err := strconv.Atoi(ms)
	if err != nil || v < 0 {
		v = 1000
	}
	return time.Duration(v) * time.Millisecond
}

// LogLevel for zerolog (debug, info, warn, error)
func LogLevel() string {
	return getenv("LOG_LEVEL", "info")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
