// Package clientconfig serves the public Supabase settings a browser client
// needs to talk to the project directly.
package clientconfig

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvSupabaseURL     = "SUPABASE_URL"
	EnvSupabaseAnonKey = "SUPABASE_ANON_KEY"
)

// Config is read once at startup and never mutated afterwards.
type Config struct {
	SupabaseURL     string `envconfig:"SUPABASE_URL"`
	SupabaseAnonKey string `envconfig:"SUPABASE_ANON_KEY"`
}

// Load reads Config from the process environment. Unset variables are not a
// load error; they surface on every request through Validate.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load client config: %w", err)
	}
	return cfg, nil
}

// Validate reports every required value that is unset or empty.
func (c Config) Validate() error {
	var missing []string
	if c.SupabaseURL == "" {
		missing = append(missing, EnvSupabaseURL)
	}
	if c.SupabaseAnonKey == "" {
		missing = append(missing, EnvSupabaseAnonKey)
	}

	if len(missing) > 0 {
		return &MissingConfigError{Vars: missing}
	}
	return nil
}

// MissingConfigError names the environment variables that were not provided.
type MissingConfigError struct {
	Vars []string
}

func (e *MissingConfigError) Error() string {
	return "required environment variables are not set: " + strings.Join(e.Vars, ", ")
}
