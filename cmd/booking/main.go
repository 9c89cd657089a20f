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
	"ticketflow/internal/http-server/handlers/booking/confirm"
	"ticketflow/internal/http-server/handlers/booking/create"
	"ticketflow/internal/http-server/handlers/booking/get"
	"ticketflow/internal/http-server/handlers/booking/userList"
	"ticketflow/internal/http-server/middleware/mwauth"
	"ticketflow/internal/http-server/middleware/mwlogger"
	"ticketflow/internal/lib/logger/handlers/slogpretty"
	"ticketflow/internal/lib/logger/sl"
	"ticketflow/internal/logbus"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoadBooking()

	log := setupLogger(cfg.Env)

	log.Info("starting booking orchestrator", slog.String("env", cfg.Env))

	verifier, err := auth.NewVerifier(context.Background(), cfg.Auth)
	if err != nil {
		log.Error("failed to init token verifier", sl.Err(err))
		os.Exit(1)
	}

	bus, err := logbus.FromConfig(cfg.LogBus.AMQPURL, cfg.LogBus.Queue, "booking")
	if err != nil {
		log.Error("failed to connect to log bus", sl.Err(err))
		os.Exit(1)
	}

	tickets := clients.NewTicket(cfg.TicketURL)
	billing := clients.NewBilling(cfg.BillingURL)
	events := clients.NewEvents(cfg.EventsURL)
	notify := clients.NewNotify(cfg.NotifyURL)

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

		r.Post("/api/v1/bookings", create.New(log, tickets, events, bus))
		r.Post("/api/v1/bookings/{booking_id}/confirm", confirm.New(log, tickets, billing, events, notify, bus))
		r.Get("/api/v1/bookings/{booking_id}", get.New(log, tickets))
		r.Get("/api/v1/bookings/user/{user_id}", userList.New(log, tickets))
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
