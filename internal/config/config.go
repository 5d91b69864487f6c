package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// Recommendation backend
	UpstreamURL           string
	UpstreamSubmitPath    string
	UpstreamSavePath      string
	UpstreamHealthPath    string
	UpstreamTimeout       time.Duration
	UpstreamCheckInterval time.Duration

	// Database (optional, enables persisted event counters)
	DatabaseURL string

	// Session
	RedisURL           string // Optional; sessions are kept in memory when empty
	SessionSecret      string // Used for signing cookies (min 32 chars)
	SessionIdleTimeout time.Duration

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://example.com,https://app.example.com"

	// Pathway catalog overrides
	PathwaysFile string

	// Site Branding
	SiteTitle     string // env: SITE_TITLE, default: "Pathways"
	SiteTagline   string // env: SITE_TAGLINE
	SiteFooter    string // env: SITE_FOOTER
	DashboardPath string // env: DASHBOARD_PATH, default: "/dashboard"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:                   getEnv("ENV", "development"),
		ServerAddr:            getEnv("SERVER_ADDR", ":3000"),
		BaseURL:               getEnv("BASE_URL", "http://localhost:3000"),
		TLSEnabled:            getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:           getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:            getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:             getEnv("TLS_CA_FILE", ""),
		UpstreamURL:           strings.TrimRight(getEnv("UPSTREAM_URL", "http://localhost:5000"), "/"),
		UpstreamSubmitPath:    getEnv("UPSTREAM_SUBMIT_PATH", "/submit_pathway"),
		UpstreamSavePath:      getEnv("UPSTREAM_SAVE_PATH", "/save_recommendation"),
		UpstreamHealthPath:    getEnv("UPSTREAM_HEALTH_PATH", "/"),
		UpstreamTimeout:       getEnvDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		UpstreamCheckInterval: getEnvDuration("UPSTREAM_CHECK_INTERVAL", 30*time.Second),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		RedisURL:              getEnv("REDIS_URL", ""),
		SessionSecret:         getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		SessionIdleTimeout:    getEnvDuration("SESSION_IDLE_TIMEOUT", 2*time.Hour),
		CORSOrigins:           getEnv("CORS_ORIGINS", ""),
		PathwaysFile:          getEnv("PATHWAYS_FILE", "pathways.yaml"),

		SiteTitle:     getEnv("SITE_TITLE", "Pathways"),
		SiteTagline:   getEnv("SITE_TAGLINE", "Find your next step in career, education and TESDA training"),
		SiteFooter:    getEnv("SITE_FOOTER", "Pathways - guidance for your next step"),
		DashboardPath: getEnv("DASHBOARD_PATH", "/dashboard"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		// Bare numbers are read as seconds
		if secs := getEnvInt(key, -1); secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}

// IsDatabaseEnabled returns true if a database URL is configured.
func (c *Config) IsDatabaseEnabled() bool {
	return c.DatabaseURL != ""
}

// IsRedisEnabled returns true if sessions should be kept in Redis.
func (c *Config) IsRedisEnabled() bool {
	return c.RedisURL != ""
}

// UpstreamEndpoint joins the backend base URL with a path.
func (c *Config) UpstreamEndpoint(path string) string {
	if path == "" {
		return c.UpstreamURL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.UpstreamURL + path
}
