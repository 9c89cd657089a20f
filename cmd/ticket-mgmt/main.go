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
	"ticketflow/internal/http-server/handlers/ticket/available"
	"ticketflow/internal/http-server/handlers/ticket/book"
	"ticketflow/internal/http-server/handlers/ticket/getBooking"
	"ticketflow/internal/http-server/handlers/ticket/transition"
	"ticketflow/internal/http-server/handlers/ticket/userBookings"
	"ticketflow/internal/http-server/middleware/mwauth"
	"ticketflow/internal/http-server/middleware/mwlogger"
	"ticketflow/internal/lib/logger/handlers/slogpretty"
	"ticketflow/internal/lib/logger/sl"
	"ticketflow/internal/logbus"
	"ticketflow/internal/storage/ticketpg"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoadTicket()

	log := setupLogger(cfg.Env)

	log.Info("starting ticket management service", slog.String("env", cfg.Env))

	storage, err := ticketpg.InitDB(&cfg.Postgres)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	verifier, err := auth.NewVerifier(context.Background(), cfg.Auth)
	if err != nil {
		log.Error("failed to init token verifier", sl.Err(err))
		os.Exit(1)
	}

	bus, err := logbus.FromConfig(cfg.LogBus.AMQPURL, cfg.LogBus.Queue, "ticket-management")
	if err != nil {
		log.Error("failed to connect to log bus", sl.Err(err))
		os.Exit(1)
	}

	events := clients.NewEvents(cfg.EventsURL)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Group(func(r chi.Router) {
		r.Use(mwauth.New(log, verifier, cfg.ServiceToken))

		r.Post("/api/v1/mgmt/bookings/book", book.New(log, storage, events))
		r.Post("/api/v1/mgmt/bookings/{id}/{action}", transition.New(log, storage, bus))
		r.Get("/api/v1/mgmt/bookings/{id}", getBooking.New(log, storage))
		r.Get("/api/v1/mgmt/bookings/user/{user_id}", userBookings.New(log, storage))
		r.Get("/api/v1/tickets/event/{event_id}/available", available.New(log, storage, events))
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

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()

	go func() {
		ticker := time.NewTicker(cfg.ExpirySweep)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				n, err := storage.CancelExpiredBookings(sweepCtx, int(cfg.PendingTTL.Minutes()))
				if err != nil {
					log.Error("failed to cancel expired bookings", sl.Err(err))
					continue
				}
				if n > 0 {
					log.Info("canceled expired bookings", slog.Int64("count", n))
				}
			case <-sweepCtx.Done():
				return
			}
		}
	}()

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
