package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/api"
	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/chat"
	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/completion"
	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/config"
	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/logger"
)

func main() {
	// Load .env file - try multiple locations
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logger.Setup(cfg.Logging); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("completion", cfg.Completion.BaseURL).
		Msg("Starting chatbot engine")

	// Wire the engine
	client := completion.NewClient(cfg.Completion, cfg.Chat.HistoryLimit)
	hub := chat.NewHub()
	session := chat.NewSession(cfg.Chat, client, hub, hub)

	// The controller mirrors the widget mount lifecycle: registered here,
	// torn down on shutdown so nothing dangles.
	chat.Register(session)
	defer chat.Unregister(session)

	router := api.NewRouter(cfg, session, client, hub)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	session.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
