// Package config exposes the environment-driven configuration surface of
// the medblog server. Runtime panel settings live in the database, this
// package only covers what must be known before the database is open.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("MEDBLOG_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("MEDBLOG_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("MEDBLOG_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/medblog"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("MEDBLOG_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

// GetJWTSecret returns the token signing secret from the environment, or
// empty when the database-held secret should be used instead.
func GetJWTSecret() string {
	return os.Getenv("MEDBLOG_JWT_SECRET")
}

// GetAdminEmail returns the seed admin email for first boot.
func GetAdminEmail() string {
	email := os.Getenv("MEDBLOG_ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	return email
}

// GetAdminPassword returns the seed admin password, empty when a random
// one should be generated and logged on first boot.
func GetAdminPassword() string {
	return os.Getenv("MEDBLOG_ADMIN_PASSWORD")
}

// GetAllowedOrigins returns the comma-separated CORS origin allowlist.
func GetAllowedOrigins() []string {
	raw := os.Getenv("MEDBLOG_ALLOWED_ORIGINS")
	if raw == "" {
		raw = "http://localhost:5173,http://localhost:5174"
	}
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// GetFrontendURL returns the public site URL used in newsletter links.
func GetFrontendURL() string {
	frontendURL := os.Getenv("MEDBLOG_FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}
	return strings.TrimRight(frontendURL, "/")
}
