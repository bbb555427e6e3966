package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/vistacall/relay/internal/adapter/driven/push/expo"
	"github.com/vistacall/relay/internal/adapter/driven/token/hmactoken"
	handler "github.com/vistacall/relay/internal/adapter/driving/http"
	"github.com/vistacall/relay/internal/config"
	"github.com/vistacall/relay/internal/core/service"
)

func main() {
	port := pflag.String("port", "", "listen port (overrides PORT)")
	pflag.Parse()

	w := zerolog.ConsoleWriter{Out: os.Stdout}
	l := zerolog.New(w).With().Timestamp().Caller().Logger()

	cfg := config.Load()
	if *port != "" {
		cfg.Port = *port
	}

	registry := service.NewRegistry()
	signer := hmactoken.NewSigner(cfg.AppID, cfg.AppCertificate)
	sender := expo.NewSender(cfg.PushEndpoint)

	callService := service.NewCallService(registry)
	pushService := service.NewPushService(registry, sender)
	tokenService := service.NewTokenService(signer, cfg.TokenTTL)

	h := handler.NewHandler(registry, callService, pushService, tokenService)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h.NewRouter(),
	}

	go func() {
		l.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	l.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("Server forced to shutdown")
	}

	registry.Close()
	l.Info().Msg("Server exited")
}
