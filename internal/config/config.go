// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/backend"
)

type Config struct {
	// HTTP server
	Port string

	// Remote data service; both values present selects the remote backend.
	StoreURL       string
	StoreAccessKey string

	// Local SQLite database
	SQLitePath string

	// Backend selection: auto, remote, local or memory. Auto resolves by
	// configuration presence.
	DataBackend string

	// AMQP mutation events; empty URL disables publishing.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Narrative summary model. The Gemini API key itself is read by the
	// genai client from its own environment variable.
	GeminiModel string

	// Logging
	LogLevel  string
	LogFormat string // text, json or pretty
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		StoreURL:       getEnv("STORE_URL", ""),
		StoreAccessKey: getEnv("STORE_ACCESS_KEY", ""),

		SQLitePath:  getEnv("SQLITE_DB_PATH", "./data/accounts.db"),
		DataBackend: getEnv("DATA_BACKEND", "auto"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "accounts"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_mutations"),

		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// Validate collects every configuration problem instead of stopping at the
// first one.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !backend.Type(c.DataBackend).IsValid() {
		problems = append(problems, fmt.Sprintf("invalid data backend %q: must be auto, remote, local or memory", c.DataBackend))
	}

	if c.StoreURL != "" {
		if u, err := url.Parse(c.StoreURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid store URL %q: %v", c.StoreURL, err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			problems = append(problems, fmt.Sprintf("invalid store URL scheme %q: must be http or https", u.Scheme))
		}
	}

	if c.AMQPURL != "" {
		if u, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL %q: %v", c.AMQPURL, err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme %q: must be amqp or amqps", u.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}
	return nil
}

// BackendConfig translates the application config into backend selection
// config.
func (c *Config) BackendConfig() backend.Config {
	return backend.Config{
		Type:            backend.Type(c.DataBackend),
		RemoteURL:       c.StoreURL,
		RemoteAccessKey: c.StoreAccessKey,
		SQLitePath:      c.SQLitePath,
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
