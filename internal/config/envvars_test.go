// ABOUTME: Tests for environment variable expansion in config
// ABOUTME: Validates ${VAR} replacement for set, unset, and nested patterns

package config

import (
	"testing"
)

func TestExpandEnv_Set(t *testing.T) {
	t.Setenv("TEST_TTY", "/dev/pts/3")
	result := expandEnv("${TEST_TTY}")
	if result != "/dev/pts/3" {
		t.Errorf("expandEnv = %q; want %q", result, "/dev/pts/3")
	}
}

func TestExpandEnv_Unset(t *testing.T) {
	result := expandEnv("${DEFINITELY_NOT_SET_12345}")
	if result != "" {
		t.Errorf("expandEnv = %q; want empty for unset var", result)
	}
}

func TestExpandEnv_Mixed(t *testing.T) {
	t.Setenv("GROUP", "bright")
	result := expandEnv("${GROUP}/*")
	if result != "bright/*" {
		t.Errorf("expandEnv = %q; want %q", result, "bright/*")
	}
}

func TestExpandEnv_NoPattern(t *testing.T) {
	result := expandEnv("plain string")
	if result != "plain string" {
		t.Errorf("expandEnv = %q; want %q", result, "plain string")
	}
}

func TestResolveEnvVars_Only(t *testing.T) {
	t.Setenv("SLOT", "red")
	s := &Settings{Only: []string{"normal/${SLOT}", "primary/*"}}

	ResolveEnvVars(s)

	if s.Only[0] != "normal/red" || s.Only[1] != "primary/*" {
		t.Errorf("Only = %v", s.Only)
	}
}
