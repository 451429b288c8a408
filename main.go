package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"akcert_backend/internals/configs"
	database "akcert_backend/internals/databases"
	scheduler "akcert_backend/internals/features/auth/scheduler"
	routes "akcert_backend/internals/route"
)

func main() {
	configs.InitLogger(os.Getenv("LOG_LEVEL"))

	cfg, err := configs.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ invalid configuration")
	}
	configs.InitLogger(cfg.LogLevel)

	// 🔌 DB connect + pool + warm-up
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ database connection failed")
	}
	database.WarmUpQueries(db)

	svc, err := routes.NewServices(cfg, db)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ wiring failed")
	}
	app := routes.NewApp(cfg, db, svc)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// ⏱ scheduler setelah DB siap
	scheduler.StartSessionCleanupScheduler(ctx, svc.Authority, cfg.SessionCleanupInterval)

	// Start server non-blocking
	go func() {
		log.Info().Str("port", cfg.Port).Msg("✅ Listening")
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(shutdownCtx)

	database.Close(db)
}
