package api

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
)

const (
	defaultStoreAPIBaseURL  = "http://localhost:8080/api"
	defaultReportTimezone   = "Asia/Ho_Chi_Minh"
	defaultStoreAPITimeout  = 10 * time.Second
	defaultDashboardTimeout = 30 * time.Second
	defaultPostgresPageSize = 500
)

// Config carries environment-driven settings for the dashboard processes.
type Config struct {
	Port string

	StoreAPIBaseURL string
	StoreAPIToken   string
	StoreAPITimeout time.Duration

	DashboardTimeout time.Duration
	// ReportLocation buckets "today" and "this month".
	ReportLocation *time.Location
	// BackendLocation interprets zone-less timestamps from the store backend.
	BackendLocation *time.Location

	PostgresDSN      string
	PostgresPageSize int

	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
}

// LoadConfig reads a .env file when present, then environment variables,
// applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:              envDefault("PORT", "8081"),
		StoreAPIBaseURL:   envDefault("STORE_API_BASE_URL", defaultStoreAPIBaseURL),
		StoreAPIToken:     strings.TrimSpace(os.Getenv("STORE_API_TOKEN")),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
	}

	if u, err := url.Parse(cfg.StoreAPIBaseURL); err != nil || !u.IsAbs() {
		return Config{}, fmt.Errorf("STORE_API_BASE_URL must be an absolute URL")
	}

	var err error
	if cfg.StoreAPITimeout, err = envDuration("STORE_API_TIMEOUT", defaultStoreAPITimeout); err != nil {
		return Config{}, err
	}
	if cfg.DashboardTimeout, err = envDuration("DASHBOARD_TIMEOUT", defaultDashboardTimeout); err != nil {
		return Config{}, err
	}
	if cfg.PostgresPageSize, err = envPositiveInt("POSTGRES_PAGE_SIZE", defaultPostgresPageSize); err != nil {
		return Config{}, err
	}

	reportZone := envDefault("REPORT_TIMEZONE", defaultReportTimezone)
	if cfg.ReportLocation, err = time.LoadLocation(reportZone); err != nil {
		return Config{}, fmt.Errorf("REPORT_TIMEZONE %q: %w", reportZone, err)
	}
	backendZone := envDefault("BACKEND_TIMEZONE", reportZone)
	if cfg.BackendLocation, err = time.LoadLocation(backendZone); err != nil {
		return Config{}, fmt.Errorf("BACKEND_TIMEZONE %q: %w", backendZone, err)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// envDuration accepts Go durations ("45s") or a bare number of seconds.
func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, errors.New(key + " must be a positive duration")
	}
	return d, nil
}

func envPositiveInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return n, nil
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
