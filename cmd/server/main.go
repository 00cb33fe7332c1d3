package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"uptask/internal/accounts"
	router "uptask/internal/adapters/http"
	"uptask/internal/adapters/realtime"
	"uptask/internal/app"
	"uptask/internal/auth"
	"uptask/internal/config"
	"uptask/internal/core"
	"uptask/internal/mail"
	"uptask/internal/store/mongo"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Secret == "" || cfg.JWTSecret == "" {
		log.Fatal().Msg("secret and jwt_secret must be configured")
	}

	store, err := mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect store")
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("store disconnect")
		}
	}()

	users := store.Users()
	projects := store.Projects()
	tasks := store.Tasks()

	var mailer mail.Mailer = mail.Discard{}
	if cfg.SMTPAddr != "" {
		mailer = &mail.SMTP{
			Addr:        cfg.SMTPAddr,
			Username:    cfg.SMTPUser,
			Password:    cfg.SMTPPass,
			FrontendURL: cfg.FrontendURL,
		}
	}

	issuer := auth.NewIssuer(cfg.JWTSecret)
	rooms := app.NewRooms()
	registry := app.NewRegistry()

	svc := router.Services{
		Accounts: accounts.NewService(users, issuer, mailer),
		Projects: core.NewProjectService(projects),
		Collab:   core.NewCollabService(projects, users),
		Tasks:    core.NewTaskService(projects, tasks),
		Issuer:   issuer,
		Users:    users,
		Realtime: realtime.NewController(rooms, registry, cfg.ReadLimit, cfg.PingPeriod),
	}

	r := router.SetupRouter(ctx, cfg, svc)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("UpTask server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
