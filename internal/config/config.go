package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider identifiers accepted in COURSE_PROVIDERS
const (
	ProviderCoursera = "coursera"
	ProviderUdemy    = "udemy"
	ProviderEdX      = "edx"
)

var knownProviders = []string{ProviderCoursera, ProviderUdemy, ProviderEdX}

// ProviderConfig holds credentials and endpoint for one course catalog
type ProviderConfig struct {
	APIKey  string
	BaseURL string // empty means the vendor default
}

// Config contains runtime settings for the server and CLI
type Config struct {
	LogLevel string
	Host     string // default 0.0.0.0
	Port     string // default PORT env or 8080

	Providers       []string // configured order is the response order
	ProviderTimeout time.Duration
	PriceParsing    string // literal or first_token

	Coursera ProviderConfig
	Udemy    ProviderConfig
	EdX      ProviderConfig

	Neo4j struct {
		URI      string
		Username string
		Password string
	} // optional catalog store
	Sheets struct {
		CredentialsPath string
	}
	SFTP struct {
		Host       string
		Port       int
		User       string
		Pass       string
		RemoteDir  string
		KnownHosts string
	} // optional CSV upload target
}

// Neo4jEnabled reports whether the catalog store is configured
func (c Config) Neo4jEnabled() bool {
	return c.Neo4j.URI != ""
}

// SheetsEnabled reports whether Google Sheets export is configured
func (c Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != ""
}

// SFTPEnabled reports whether CSV upload is configured
func (c Config) SFTPEnabled() bool {
	return c.SFTP.Host != ""
}

// Provider returns the settings of the named provider
func (c Config) Provider(name string) (ProviderConfig, bool) {
	switch name {
	case ProviderCoursera:
		return c.Coursera, true
	case ProviderUdemy:
		return c.Udemy, true
	case ProviderEdX:
		return c.EdX, true
	}
	return ProviderConfig{}, false
}

// Load reads an optional .env file, then populates config from environment variables
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		LogLevel:        "info",
		Host:            "0.0.0.0",
		Port:            "8080",
		Providers:       append([]string(nil), knownProviders...),
		ProviderTimeout: 10 * time.Second,
		PriceParsing:    "literal",
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	var problems []string

	if v := os.Getenv("COURSE_PROVIDERS"); v != "" {
		providers, err := parseProviders(v)
		if err != nil {
			problems = append(problems, err.Error())
		} else {
			cfg.Providers = providers
		}
	}

	if v := os.Getenv("PROVIDER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			problems = append(problems, fmt.Sprintf("PROVIDER_TIMEOUT must be a positive duration, got %q", v))
		} else {
			cfg.ProviderTimeout = d
		}
	}

	if v := os.Getenv("PRICE_PARSING"); v != "" {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "literal" && v != "first_token" {
			problems = append(problems, fmt.Sprintf("PRICE_PARSING must be literal or first_token, got %q", v))
		} else {
			cfg.PriceParsing = v
		}
	}

	cfg.Coursera = ProviderConfig{APIKey: os.Getenv("COURSERA_API_KEY"), BaseURL: os.Getenv("COURSERA_BASE_URL")}
	cfg.Udemy = ProviderConfig{APIKey: os.Getenv("UDEMY_API_KEY"), BaseURL: os.Getenv("UDEMY_BASE_URL")}
	cfg.EdX = ProviderConfig{APIKey: os.Getenv("EDX_API_KEY"), BaseURL: os.Getenv("EDX_BASE_URL")}

	cfg.Neo4j.URI = os.Getenv("NEO4J_URI")
	cfg.Neo4j.Username = os.Getenv("NEO4J_USERNAME")
	cfg.Neo4j.Password = os.Getenv("NEO4J_PASSWORD")

	cfg.Sheets.CredentialsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")

	cfg.SFTP.Host = os.Getenv("SFTP_HOST")
	cfg.SFTP.User = os.Getenv("SFTP_USER")
	cfg.SFTP.Pass = os.Getenv("SFTP_PASS")
	cfg.SFTP.RemoteDir = os.Getenv("SFTP_REMOTE_DIR")
	cfg.SFTP.KnownHosts = os.Getenv("SFTP_KNOWN_HOSTS")
	if cfg.SFTP.RemoteDir == "" {
		cfg.SFTP.RemoteDir = "/"
	}
	cfg.SFTP.Port = 22
	if v := os.Getenv("SFTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			problems = append(problems, fmt.Sprintf("SFTP_PORT must be a positive integer, got %q", v))
		} else {
			cfg.SFTP.Port = port
		}
	}

	var missingVars []string

	for _, name := range cfg.Providers {
		pc, _ := cfg.Provider(name)
		if pc.APIKey == "" {
			missingVars = append(missingVars, strings.ToUpper(name)+"_API_KEY")
		}
	}

	if cfg.Neo4j.URI != "" {
		if cfg.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}
		if cfg.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}
	}

	if cfg.SFTP.Host != "" && cfg.SFTP.User == "" {
		missingVars = append(missingVars, "SFTP_USER")
	}

	if len(missingVars) > 0 {
		problems = append(problems, "missing required environment variables: "+strings.Join(missingVars, ", "))
	}

	if len(problems) > 0 {
		return cfg, errors.New(strings.Join(problems, "; "))
	}

	return cfg, nil
}

func parseProviders(v string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, raw := range strings.Split(v, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if !isKnown(name) {
			return nil, fmt.Errorf("COURSE_PROVIDERS: unknown provider %q (want one of %s)", name, strings.Join(knownProviders, ", "))
		}
		if seen[name] {
			return nil, fmt.Errorf("COURSE_PROVIDERS: provider %q listed twice", name)
		}
		seen[name] = true
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("COURSE_PROVIDERS: at least one provider is required")
	}
	return out, nil
}

func isKnown(name string) bool {
	for _, p := range knownProviders {
		if p == name {
			return true
		}
	}
	return false
}
