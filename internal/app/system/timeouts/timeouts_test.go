package timeouts

import (
	"testing"
	"time"
)

func TestConfigureFromEnv_AppliesOverrides(t *testing.T) {
	t.Cleanup(Reset)

	t.Setenv("TIMEOUT_PING", "1s")
	t.Setenv("TIMEOUT_SHORT", "3s")
	t.Setenv("TIMEOUT_MEDIUM", "7s")
	t.Setenv("TIMEOUT_LONG", "45s")

	if applied := ConfigureFromEnv(); applied != 4 {
		t.Errorf("applied: got %d, want 4", applied)
	}
	if Ping() != time.Second {
		t.Errorf("Ping: got %s, want 1s", Ping())
	}
	if Short() != 3*time.Second {
		t.Errorf("Short: got %s, want 3s", Short())
	}
	if Medium() != 7*time.Second {
		t.Errorf("Medium: got %s, want 7s", Medium())
	}
	if Long() != 45*time.Second {
		t.Errorf("Long: got %s, want 45s", Long())
	}
}

func TestConfigureFromEnv_IgnoresInvalidValues(t *testing.T) {
	t.Cleanup(Reset)

	t.Setenv("TIMEOUT_PING", "not-a-duration")
	t.Setenv("TIMEOUT_SHORT", "-5s")
	t.Setenv("TIMEOUT_MEDIUM", "0")

	if applied := ConfigureFromEnv(); applied != 0 {
		t.Errorf("applied: got %d, want 0", applied)
	}
	if Ping() != DefaultPing || Short() != DefaultShort || Medium() != DefaultMedium {
		t.Error("invalid values must keep the defaults")
	}
}

func TestConfigureFromEnv_UnsetKeepsDefaults(t *testing.T) {
	t.Cleanup(Reset)

	t.Setenv("TIMEOUT_PING", "")
	t.Setenv("TIMEOUT_SHORT", "")
	t.Setenv("TIMEOUT_MEDIUM", "")
	t.Setenv("TIMEOUT_LONG", "")

	if applied := ConfigureFromEnv(); applied != 0 {
		t.Errorf("applied: got %d, want 0", applied)
	}
	if Long() != DefaultLong {
		t.Errorf("Long: got %s, want default %s", Long(), DefaultLong)
	}
}
