package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pokeguess/internal/httpserver"
	"github.com/robalobadob/pokeguess/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	if cfg.HTTP.PlayerSecret == "dev_secret_change_me" {
		log.Warn().Msg("PLAYER_SECRET not set; using development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mem := store.NewMemoryStore()
	srv, err := httpserver.New(mem, cfg.HTTP)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}
	go sweep(ctx, mem, cfg.PlayerTTL, cfg.SweepEvery)

	hs := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdownCtx)
	}()

	log.Info().Str("port", cfg.Port).Int("defaultMax", cfg.HTTP.DefaultMax).Msg("starting go-server")
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// sweep evicts idle players until ctx is done.
func sweep(ctx context.Context, st store.Store, ttl, every time.Duration) {
	if ttl <= 0 || every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := st.Sweep(ctx, now.Add(-ttl))
			if err != nil {
				log.Warn().Err(err).Msg("sweep players")
				continue
			}
			if n > 0 {
				log.Info().Int("evicted", n).Int("live", st.Len()).Msg("swept idle players")
			}
		}
	}
}
