package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Every service reads its configuration from environment variables only.
// Missing required variables are fatal at startup.

type HTTPServer struct {
	Address     string        `env:"HTTP_ADDR" env-default:":8080"`
	Timeout     time.Duration `env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type Postgres struct {
	Host     string `env:"PG_HOST" env-default:"localhost"`
	Port     int    `env:"PG_PORT" env-default:"5432"`
	User     string `env:"PG_USER" env-required:"true"`
	Password string `env:"PG_PASSWORD" env-required:"true"`
	DBName   string `env:"PG_DBNAME" env-required:"true"`
	SSLMode  string `env:"PG_SSLMODE" env-default:"disable"`
	MaxConns int    `env:"PG_MAX_CONNS" env-default:"10"`
}

type Auth struct {
	JWKSURL  string `env:"AUTH_JWKS_URL" env-required:"true"`
	Issuer   string `env:"AUTH_ISSUER" env-required:"true"`
	ClientID string `env:"AUTH_CLIENT_ID" env-required:"true"`
}

type LogBus struct {
	// Empty URL disables the bus; services fall back to process logs only.
	AMQPURL string `env:"AMQP_URL"`
	Queue   string `env:"LOGBUS_QUEUE" env-default:"logs_queue"`
}

type Ticket struct {
	Env        string     `env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `env-prefix:"TICKET_"`
	Postgres   Postgres   `env-prefix:"TICKET_"`
	Auth       Auth       ``
	LogBus     LogBus     ``
	EventsURL  string     `env:"EVENTS_URL" env-required:"true"`
	// ServiceToken admits internal callers (the billing webhook fan-out
	// confirming bookings). Empty disables the bypass.
	ServiceToken string        `env:"INTERNAL_SERVICE_TOKEN"`
	ExpirySweep  time.Duration `env:"TICKET_EXPIRY_SWEEP" env-default:"1m"`
	PendingTTL   time.Duration `env:"TICKET_PENDING_TTL" env-default:"30m"`
}

type Billing struct {
	Env           string     `env:"ENV" env-default:"local"`
	HTTPServer    HTTPServer `env-prefix:"BILLING_"`
	Postgres      Postgres   `env-prefix:"BILLING_"`
	Auth          Auth       ``
	LogBus        LogBus     ``
	ProviderURL   string     `env:"PROVIDER_API_URL" env-default:"https://api.stripe.com"`
	ProviderKey   string     `env:"PROVIDER_SECRET_KEY" env-required:"true"`
	WebhookSecret string     `env:"PROVIDER_WEBHOOK_SECRET" env-required:"true"`
	AllowUnsigned bool       `env:"BILLING_ALLOW_UNSIGNED" env-default:"false"`
	BookingURL    string     `env:"BOOKING_URL" env-required:"true"`
	ServiceToken  string     `env:"INTERNAL_SERVICE_TOKEN" env-required:"true"`
	Currencies    []string   `env:"BILLING_CURRENCIES" env-default:"sgd,usd"`
	MinAmount     int64      `env:"BILLING_MIN_AMOUNT" env-default:"50"`
}

type Booking struct {
	Env          string     `env:"ENV" env-default:"local"`
	HTTPServer   HTTPServer `env-prefix:"BOOKING_"`
	Auth         Auth       ``
	LogBus       LogBus     ``
	TicketURL    string     `env:"TICKET_URL" env-required:"true"`
	BillingURL   string     `env:"BILLING_URL" env-required:"true"`
	EventsURL    string     `env:"EVENTS_URL" env-required:"true"`
	NotifyURL    string     `env:"NOTIFY_URL" env-required:"true"`
	ServiceToken string     `env:"INTERNAL_SERVICE_TOKEN" env-required:"true"`
}

type Refund struct {
	Env        string     `env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `env-prefix:"REFUND_"`
	Auth       Auth       ``
	LogBus     LogBus     ``
	BookingURL string     `env:"BOOKING_URL" env-required:"true"`
	BillingURL string     `env:"BILLING_URL" env-required:"true"`
	TicketURL  string     `env:"TICKET_URL" env-required:"true"`
	EventsURL  string     `env:"EVENTS_URL" env-required:"true"`
	NotifyURL  string     `env:"NOTIFY_URL" env-required:"true"`
}

type LogSink struct {
	Env        string     `env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `env-prefix:"LOGSINK_"`
	Postgres   Postgres   `env-prefix:"LOGSINK_"`
	AMQPURL    string     `env:"AMQP_URL" env-required:"true"`
	Queue      string     `env:"LOGBUS_QUEUE" env-default:"logs_queue"`
}

func MustLoadTicket() *Ticket {
	var cfg Ticket
	mustRead(&cfg)
	return &cfg
}

func MustLoadBilling() *Billing {
	var cfg Billing
	mustRead(&cfg)
	return &cfg
}

func MustLoadBooking() *Booking {
	var cfg Booking
	mustRead(&cfg)
	return &cfg
}

func MustLoadRefund() *Refund {
	var cfg Refund
	mustRead(&cfg)
	return &cfg
}

func MustLoadLogSink() *LogSink {
	var cfg LogSink
	mustRead(&cfg)
	return &cfg
}

func mustRead(cfg interface{}) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
}
