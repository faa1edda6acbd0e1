package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RESTAURANT_BACKEND", "memory")
	t.Setenv("QUERY_TIMEOUT", "")
	t.Setenv("RESULT_LIMIT", "")
	t.Setenv("CUSTOM_LOCATIONS_ENABLED", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
	assert.Equal(t, 30, cfg.ResultLimit)
	assert.False(t, cfg.CustomLocationsEnabled)
	assert.Equal(t, 135.5, cfg.Map.CenterLng)
	assert.Equal(t, 34.6, cfg.Map.CenterLat)
	assert.Equal(t, 9.0, cfg.Map.Zoom)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("RESTAURANT_BACKEND", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("QUERY_TIMEOUT", "750ms")
	t.Setenv("RESULT_LIMIT", "10")
	t.Setenv("CUSTOM_LOCATIONS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, 750*time.Millisecond, cfg.QueryTimeout)
	assert.Equal(t, 10, cfg.ResultLimit)
	assert.True(t, cfg.CustomLocationsEnabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"supabase without url", Config{Backend: BackendSupabase, ResultLimit: 30, QueryTimeout: time.Second}, true},
		{"supabase ok", Config{Backend: BackendSupabase, SupabaseURL: "https://x.supabase.co", SupabaseAnonKey: "k", ResultLimit: 30, QueryTimeout: time.Second}, false},
		{"postgres via supabase", Config{Backend: BackendPostgres, SupabaseURL: "https://x.supabase.co", SupabaseDBPassword: "p", ResultLimit: 30, QueryTimeout: time.Second}, false},
		{"firestore without project", Config{Backend: BackendFirestore, ResultLimit: 30, QueryTimeout: time.Second}, true},
		{"unknown backend", Config{Backend: "mongo", ResultLimit: 30, QueryTimeout: time.Second}, true},
		{"zero limit", Config{Backend: BackendMemory, QueryTimeout: time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{SupabaseURL: "https://abc.supabase.co", SupabaseDBPassword: "secret"}
	assert.Equal(t, "host=db.abc.supabase.co port=6543 user=postgres password=secret dbname=postgres sslmode=require", cfg.PostgresDSN())

	cfg.DatabaseURL = "postgres://localhost/restaurants"
	assert.Equal(t, "postgres://localhost/restaurants", cfg.PostgresDSN())
}
