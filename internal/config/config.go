package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	sharedauth "github.com/carboloom/carboloom/shared/auth"
	"github.com/carboloom/carboloom/shared/envconfig"
)

// Config encapsulates the runtime configuration for the CarboLoom service.
type Config struct {
	Port         string `validate:"required,numeric"`
	GCPProjectID string
	DataStore    DataStore
	Auth         AuthConfig
	Firestore    FirestoreConfig
	Emission     EmissionConfig
	LLM          LLMConfig
	Export       ExportConfig
	Timezone     string `validate:"required"`
}

// DataStore enumerates supported persistence backends.
type DataStore string

const (
	// DataStoreMemory keeps everything in process. Local development and tests.
	DataStoreMemory DataStore = "memory"
	// DataStoreFirestore stores logs and gamification records in Firestore.
	DataStoreFirestore DataStore = "firestore"
)

// AuthConfig stores authentication middleware setup.
type AuthConfig struct {
	Mode     sharedauth.Mode
	JWKSURL  string `validate:"omitempty,url"`
	Audience string
	Issuer   string
}

// FirestoreConfig tailors Firestore client behavior.
type FirestoreConfig struct {
	EmulatorHost string
	DatabaseID   string
}

// EmissionConfig holds the emission factor inputs.
type EmissionConfig struct {
	GridFactor  float64 `validate:"gt=0"`
	FactorsPath string
}

// LLMConfig defines how the assistant talks to Gemini. An empty APIKey without
// Vertex leaves the assistant unconfigured.
type LLMConfig struct {
	APIKey          string
	Model           string
	MaxOutputTokens int `validate:"gt=0"`
	UseVertex       bool
	Location        string
}

// Enabled reports whether enough is configured to reach Gemini.
func (c LLMConfig) Enabled() bool {
	return c.UseVertex || strings.TrimSpace(c.APIKey) != ""
}

// ExportConfig names the snapshot bucket. Empty disables exports.
type ExportConfig struct {
	Bucket string
}

// Load reads environment variables into Config with validation.
func Load() (Config, error) {
	cfg := Config{
		Port:         envconfig.Get("PORT", "8080"),
		GCPProjectID: envconfig.First("", "GCP_PROJECT_ID", "GOOGLE_CLOUD_PROJECT"),
		DataStore:    DataStore(strings.ToLower(envconfig.Get("DATASTORE", string(DataStoreMemory)))),
		Auth: AuthConfig{
			Mode:     sharedauth.Mode(strings.ToLower(envconfig.Get("AUTH_MODE", string(sharedauth.ModeNoop)))),
			JWKSURL:  envconfig.Get("CLERK_JWKS_URL", ""),
			Audience: envconfig.Get("CLERK_AUDIENCE", ""),
			Issuer:   envconfig.Get("CLERK_ISSUER", ""),
		},
		Firestore: FirestoreConfig{
			EmulatorHost: envconfig.Get("FIRESTORE_EMULATOR_HOST", ""),
			DatabaseID:   envconfig.Get("FIRESTORE_DATABASE_ID", ""),
		},
		Emission: EmissionConfig{
			GridFactor:  envconfig.Float("GRID_EMISSION_FACTOR", 0.71),
			FactorsPath: envconfig.Get("EMISSION_FACTORS_PATH", ""),
		},
		LLM: LLMConfig{
			APIKey:          envconfig.First("", "GEMINI_API_KEY", "GOOGLE_API_KEY"),
			Model:           envconfig.Get("GEMINI_MODEL", "gemini-2.5-flash"),
			MaxOutputTokens: parseIntFallback(envconfig.Get("ASSISTANT_MAX_OUTPUT_TOKENS", "1024"), 1024),
			UseVertex:       envconfig.Bool("GOOGLE_GENAI_USE_VERTEXAI", false),
			Location:        envconfig.Get("GOOGLE_CLOUD_LOCATION", ""),
		},
		Export: ExportConfig{
			Bucket: envconfig.Get("EXPORT_BUCKET", ""),
		},
		Timezone: envconfig.Get("APP_TIMEZONE", "Asia/Kolkata"),
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Location resolves Timezone. Validation has already checked it loads.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func validate(cfg Config) error {
	if err := envconfig.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch cfg.DataStore {
	case DataStoreMemory:
		// no-op
	case DataStoreFirestore:
		if cfg.GCPProjectID == "" {
			return fmt.Errorf("gcp project id required when datastore=firestore")
		}
	default:
		return fmt.Errorf("unsupported datastore: %s", cfg.DataStore)
	}

	switch cfg.Auth.Mode {
	case sharedauth.ModeClerk:
		if cfg.Auth.JWKSURL == "" {
			return fmt.Errorf("CLERK_JWKS_URL is required when AUTH_MODE=clerk")
		}
	case sharedauth.ModeNoop:
		// no-op
	default:
		return fmt.Errorf("unsupported auth mode: %s", cfg.Auth.Mode)
	}

	if cfg.LLM.UseVertex && strings.TrimSpace(cfg.LLM.Location) == "" {
		return fmt.Errorf("GOOGLE_CLOUD_LOCATION is required when GOOGLE_GENAI_USE_VERTEXAI=true")
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", cfg.Timezone, err)
	}

	return nil
}

func parseIntFallback(raw string, fallback int) int {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return fallback
	}
	return val
}
