package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func testViper(kv map[string]string) *viper.Viper {
	v := newViper()
	for k, val := range kv {
		v.Set(k, val)
	}
	return v
}

func TestFromViperDefaults(t *testing.T) {
	c, err := FromViper(testViper(map[string]string{"JWT_SECRET": "s"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Backend != BackendMock {
		t.Errorf("expected mock backend by default, got %q", c.Backend)
	}
	if c.HTTPPort != "8080" {
		t.Errorf("expected port 8080, got %q", c.HTTPPort)
	}
	if c.JWTTTL != 24*time.Hour {
		t.Errorf("expected 24h ttl, got %v", c.JWTTTL)
	}
	if c.SettingsStore != SettingsMemory {
		t.Errorf("expected memory settings store, got %q", c.SettingsStore)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		kv      map[string]string
		wantErr bool
	}{
		{"postgres without url", map[string]string{"BACKEND": "postgres", "JWT_SECRET": "s"}, true},
		{"postgres with url", map[string]string{"BACKEND": "postgres", "DATABASE_URL": "postgres://x", "JWT_SECRET": "s"}, false},
		{"unknown backend", map[string]string{"BACKEND": "supabase", "JWT_SECRET": "s"}, true},
		{"redis without addr", map[string]string{"SETTINGS_STORE": "redis", "JWT_SECRET": "s"}, true},
		{"db settings on mock", map[string]string{"SETTINGS_STORE": "db", "JWT_SECRET": "s"}, true},
		{"missing secret", map[string]string{}, true},
		{"bad ttl", map[string]string{"JWT_EXPIRES_IN": "soon", "JWT_SECRET": "s"}, true},
		{"sqlite", map[string]string{"BACKEND": "SQLite", "JWT_SECRET": "s"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromViper(testViper(tt.kv))
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
