package config

import (
	"reflect"
	"testing"
	"time"
)

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"http://a.test", []string{"http://a.test"}},
		{" http://a.test , ,http://b.test ", []string{"http://a.test", "http://b.test"}},
	}
	for _, tt := range tests {
		if got := parseOrigins(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseOrigins(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("TICK_INTERVAL_MS", "")

	cfg := Load()
	if cfg.StorageDriver != StorageSQLite {
		t.Errorf("StorageDriver = %q", cfg.StorageDriver)
	}
	if cfg.TickInterval != time.Second {
		t.Errorf("TickInterval = %s", cfg.TickInterval)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("TICK_INTERVAL_MS", "250")
	t.Setenv("ADMIN_RATE_LIMIT_PER_MINUTE", "nope")

	cfg := Load()
	if cfg.StorageDriver != StorageRedis {
		t.Errorf("StorageDriver = %q", cfg.StorageDriver)
	}
	if cfg.TickInterval != 250*time.Millisecond {
		t.Errorf("TickInterval = %s", cfg.TickInterval)
	}
	if cfg.AdminRateLimitPerMinute != 30 {
		t.Errorf("invalid int should fall back, got %d", cfg.AdminRateLimitPerMinute)
	}
}
