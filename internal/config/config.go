package config

import (
	"os"
	"strconv"
)

// Config holds all Loupe configuration.
type Config struct {
	Engine    EngineConfig
	Connector ConnectorConfig
	Output    OutputConfig
	Server    ServerConfig
	Enrich    EnrichConfig
}

// EngineConfig holds analysis engine settings.
type EngineConfig struct {
	MaxLines     int     // default truncation limit
	SeriousRatio float64 // serious:positive ratio for the "serious" verdict
	HealthyRatio float64 // positive:serious ratio for the "healthy" verdict
}

// ConnectorConfig holds log source settings.
type ConnectorConfig struct {
	Provider string // "stdin", "file", "httpjson"
	Path     string // file connector: path to read
	Endpoint string // httpjson connector: URL to poll
	APIKey   string // httpjson connector: bearer token
	Extra    map[string]string
}

// OutputConfig holds report destination settings.
type OutputConfig struct {
	Format     string // "stdout", "file", "webhook", or "multi"
	Path       string // file output: destination path
	WebhookURL string // optional webhook fan-out
	Pretty     bool   // pretty-print JSON
}

// ServerConfig holds HTTP/websocket server settings.
type ServerConfig struct {
	Addr string
}

// EnrichConfig holds context-enrichment settings.
type EnrichConfig struct {
	Enabled bool
	Root    string // project directory the collector inspects
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Engine: EngineConfig{
			MaxLines:     getenvInt("LOUPE_MAX_LINES", 1000),
			SeriousRatio: getenvFloat("LOUPE_SERIOUS_RATIO", 2.0),
			HealthyRatio: getenvFloat("LOUPE_HEALTHY_RATIO", 2.0),
		},
		Connector: ConnectorConfig{
			Provider: getenv("LOUPE_CONNECTOR", "stdin"),
			Path:     os.Getenv("LOUPE_FILE"),
			Endpoint: os.Getenv("LOUPE_ENDPOINT"),
			APIKey:   os.Getenv("LOUPE_API_KEY"),
			Extra:    loadConnectorExtra(),
		},
		Output: OutputConfig{
			Format:     getenv("LOUPE_OUTPUT", "stdout"),
			Path:       os.Getenv("LOUPE_OUTPUT_PATH"),
			WebhookURL: os.Getenv("LOUPE_WEBHOOK_URL"),
			Pretty:     getenvBool("LOUPE_PRETTY", false),
		},
		Server: ServerConfig{
			Addr: getenv("LOUPE_ADDR", ":8440"),
		},
		Enrich: EnrichConfig{
			Enabled: getenvBool("LOUPE_ENRICH", false),
			Root:    getenv("LOUPE_ENRICH_ROOT", "."),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadConnectorExtra reads provider-specific env vars into an Extra map.
func loadConnectorExtra() map[string]string {
	vars := []struct {
		envVar   string
		extraKey string
	}{
		{"LOUPE_POLL_INTERVAL", "poll_interval"},
		{"LOUPE_HTTPJSON_FIELD", "message_field"},
	}

	var m map[string]string
	for _, v := range vars {
		if val := os.Getenv(v.envVar); val != "" {
			if m == nil {
				m = make(map[string]string)
			}
			m[v.extraKey] = val
		}
	}
	return m
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
