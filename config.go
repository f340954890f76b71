package main

import (
	"os"
	"strconv"
	"time"

	"github.com/robalobadob/pokeguess/internal/game"
	"github.com/robalobadob/pokeguess/internal/httpserver"
)

// config is everything main reads from the environment (after .env).
type config struct {
	Port       string
	LogLevel   string
	LogPretty  bool
	PlayerTTL  time.Duration
	SweepEvery time.Duration
	HTTP       httpserver.Config
}

func loadConfig() config {
	production := getEnv("APP_ENV", "development") == "production"
	return config{
		Port:       getEnv("PORT", "5175"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogPretty:  envBool("LOG_PRETTY", !production),
		PlayerTTL:  time.Duration(envInt("PLAYER_TTL_MINUTES", 120)) * time.Minute,
		SweepEvery: time.Duration(envInt("SWEEP_SECONDS", 60)) * time.Second,
		HTTP: httpserver.Config{
			ClientOrigin:  os.Getenv("CLIENT_ORIGIN"),
			PlayerSecret:  getEnv("PLAYER_SECRET", "dev_secret_change_me"),
			CookieName:    getEnv("COOKIE_NAME", "pokeguess_player"),
			CookieTTL:     time.Duration(envInt("COOKIE_DAYS", 180)) * 24 * time.Hour,
			SecureCookies: production,
			DefaultMax:    game.ClampMax(envInt("DEFAULT_MAX", game.DefaultMax)),
			PublicURL:     os.Getenv("PUBLIC_URL"),
			DebugTarget:   envBool("DEBUG_TARGET", false),
			WSBuffer:      envInt("WS_BUFFER", 32),
		},
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return def
}

func envBool(k string, def bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(k)); err == nil {
		return b
	}
	return def
}
