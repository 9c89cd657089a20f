package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ticketflow/internal/auth"
	"ticketflow/internal/clients"
	"ticketflow/internal/config"
	"ticketflow/internal/http-server/handlers/billing/createSession"
	"ticketflow/internal/http-server/handlers/billing/eventPayments"
	"ticketflow/internal/http-server/handlers/billing/getIntent"
	"ticketflow/internal/http-server/handlers/billing/refundProcess"
	"ticketflow/internal/http-server/handlers/billing/storeIntent"
	"ticketflow/internal/http-server/handlers/billing/webhook"
	"ticketflow/internal/http-server/middleware/mwauth"
	"ticketflow/internal/http-server/middleware/mwlogger"
	"ticketflow/internal/lib/logger/handlers/slogpretty"
	"ticketflow/internal/lib/logger/sl"
	"ticketflow/internal/logbus"
	"ticketflow/internal/provider"
	"ticketflow/internal/storage/billingpg"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoadBilling()

	log := setupLogger(cfg.Env)

	log.Info("starting billing service", slog.String("env", cfg.Env))

	storage, err := billingpg.InitDB(&cfg.Postgres)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	verifier, err := auth.NewVerifier(context.Background(), cfg.Auth)
	if err != nil {
		log.Error("failed to init token verifier", sl.Err(err))
		os.Exit(1)
	}

	bus, err := logbus.FromConfig(cfg.LogBus.AMQPURL, cfg.LogBus.Queue, "billing")
	if err != nil {
		log.Error("failed to connect to log bus", sl.Err(err))
		os.Exit(1)
	}

	payments := provider.NewClient(cfg.ProviderURL, cfg.ProviderKey)
	booking := clients.ServiceConfirmer{
		Client: clients.NewBooking(cfg.BookingURL),
		Token:  cfg.ServiceToken,
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// The provider authenticates with a signature, not a bearer.
	router.Post("/api/webhook/", webhook.New(log, webhook.Config{
		WebhookSecret: cfg.WebhookSecret,
		AllowUnsigned: cfg.AllowUnsigned,
	}, storage, booking, bus))

	router.Group(func(r chi.Router) {
		r.Use(mwauth.New(log, verifier, cfg.ServiceToken))

		r.Post("/api/payments/create-session", createSession.New(log, payments, createSession.Limits{
			Currencies: cfg.Currencies,
			MinAmount:  cfg.MinAmount,
		}))
		r.Post("/api/payments/store-intent-booking", storeIntent.New(log, storage))
		r.Get("/api/payments/intent/{booking_id}", getIntent.New(log, storage))
		r.Post("/api/refund/process", refundProcess.New(log, payments, bus))
		r.Get("/api/events/verify-payment", eventPayments.NewVerify(log, storage))
		r.Get("/api/events/payment-ids-and-amount", eventPayments.NewList(log, storage))
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	if err = bus.Close(); err != nil {
		log.Error("failed to close log bus", sl.Err(err))
	}

	if err = storage.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("application stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
