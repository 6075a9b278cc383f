// ABOUTME: Settings loading with global + project config merge and CLI overrides
// ABOUTME: JSON-based configuration using encoding/json; validated before use

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Defaults applied when neither a file nor a flag sets a value.
const (
	DefaultTimeoutMS = 500
	DefaultRetries   = 5
	DefaultFormat    = "lua"

	maxTimeoutMS = 60_000
	maxRetries   = 100
)

// Settings holds the merged configuration.
type Settings struct {
	TimeoutMS int      `json:"timeout_ms,omitempty"`
	Retries   int      `json:"retries,omitempty"`
	Format    string   `json:"format,omitempty"`
	TTY       string   `json:"tty,omitempty"`
	Only      []string `json:"only,omitempty"`
	Preview   bool     `json:"preview,omitempty"`
	Verbose   bool     `json:"verbose,omitempty"`
}

// Timeout returns the per-poll deadline.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutMS) * time.Millisecond
}

// ValidationError reports a setting outside its accepted range.
type ValidationError struct {
	Field string
	Value any
	Want  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: want %s", e.Field, e.Value, e.Want)
}

// Load reads and merges global and project-local settings.
// Project settings override global settings.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return merge(global, project), nil
}

// LoadAll loads the config files, expands ${VAR} references, applies
// cli on top, fills defaults and validates the result.
func LoadAll(projectRoot string, cli *Settings) (*Settings, error) {
	s, err := Load(projectRoot)
	if err != nil {
		return nil, err
	}
	ResolveEnvVars(s)

	s = merge(s, cli)
	applyDefaults(s)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadFile reads a Settings from a JSON file. Returns zero Settings if file
// does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays non-zero values of over onto base.
func merge(base, over *Settings) *Settings {
	if base == nil {
		base = &Settings{}
	}
	if over == nil {
		return base
	}

	result := *base

	if over.TimeoutMS != 0 {
		result.TimeoutMS = over.TimeoutMS
	}
	if over.Retries != 0 {
		result.Retries = over.Retries
	}
	if over.Format != "" {
		result.Format = over.Format
	}
	if over.TTY != "" {
		result.TTY = over.TTY
	}
	if len(over.Only) > 0 {
		result.Only = append([]string(nil), over.Only...)
	}
	if over.Preview {
		result.Preview = true
	}
	if over.Verbose {
		result.Verbose = true
	}

	return &result
}

func applyDefaults(s *Settings) {
	if s.TimeoutMS == 0 {
		s.TimeoutMS = DefaultTimeoutMS
	}
	if s.Retries == 0 {
		s.Retries = DefaultRetries
	}
	if s.Format == "" {
		s.Format = DefaultFormat
	}
}

// Validate checks numeric ranges. Format names are checked by the
// renderer that consumes them.
func (s *Settings) Validate() error {
	if s.TimeoutMS < 1 || s.TimeoutMS > maxTimeoutMS {
		return &ValidationError{Field: "timeout_ms", Value: s.TimeoutMS, Want: fmt.Sprintf("1..%d", maxTimeoutMS)}
	}
	if s.Retries < 1 || s.Retries > maxRetries {
		return &ValidationError{Field: "retries", Value: s.Retries, Want: fmt.Sprintf("1..%d", maxRetries)}
	}
	return nil
}
