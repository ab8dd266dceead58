package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv(EnvDB, "/tmp/x.db")
	if got := GetEnv(EnvDB, "fallback"); got != "/tmp/x.db" {
		t.Errorf("GetEnv = %q, expected /tmp/x.db", got)
	}
	if got := GetEnv("CATAPULT_TEST_UNSET_VAR", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q, expected fallback", got)
	}
}
