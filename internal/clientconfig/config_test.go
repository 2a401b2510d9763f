package clientconfig

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, key := range []string{EnvSupabaseURL, EnvSupabaseAnonKey} {
		t.Setenv(key, "")
		if v, ok := env[key]; ok {
			os.Setenv(key, v)
		} else {
			os.Unsetenv(key)
		}
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Config
	}{
		{
			"both_set",
			map[string]string{EnvSupabaseURL: "https://x.supabase.co", EnvSupabaseAnonKey: "abc123"},
			Config{SupabaseURL: "https://x.supabase.co", SupabaseAnonKey: "abc123"},
		},
		{
			"url_only",
			map[string]string{EnvSupabaseURL: "https://x.supabase.co"},
			Config{SupabaseURL: "https://x.supabase.co"},
		},
		{"nothing_set", map[string]string{}, Config{}},
		{
			"whitespace_kept",
			map[string]string{EnvSupabaseURL: " ", EnvSupabaseAnonKey: "k "},
			Config{SupabaseURL: " ", SupabaseAnonKey: "k "},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)

			got, err := Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantMissing []string
	}{
		{"complete", Config{SupabaseURL: "u", SupabaseAnonKey: "k"}, nil},
		{"no_url", Config{SupabaseAnonKey: "k"}, []string{EnvSupabaseURL}},
		{"no_key", Config{SupabaseURL: "u"}, []string{EnvSupabaseAnonKey}},
		{"empty", Config{}, []string{EnvSupabaseURL, EnvSupabaseAnonKey}},
		{"whitespace_is_present", Config{SupabaseURL: " ", SupabaseAnonKey: "\t"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantMissing == nil {
				if err != nil {
					t.Fatalf("Validate = %v, want nil", err)
				}
				return
			}

			var missing *MissingConfigError
			if !errors.As(err, &missing) {
				t.Fatalf("Validate = %v, want *MissingConfigError", err)
			}
			if diff := cmp.Diff(tt.wantMissing, missing.Vars); diff != "" {
				t.Errorf("missing vars (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMissingConfigErrorMessage(t *testing.T) {
	err := &MissingConfigError{Vars: []string{EnvSupabaseURL, EnvSupabaseAnonKey}}
	want := "required environment variables are not set: SUPABASE_URL, SUPABASE_ANON_KEY"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
