// ABOUTME: Tests for CLI flag parsing and conversion to config overrides

package main

import (
	"errors"
	"io"
	"testing"
	"time"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		argv    []string
		want    cliArgs
		wantErr error
	}{
		{
			name: "output only",
			argv: []string{"colors.lua"},
			want: cliArgs{output: "colors.lua"},
		},
		{
			name: "all flags",
			argv: []string{"-format", "json", "-timeout", "250ms", "-retries", "3", "-tty", "/dev/tty",
				"-only", "primary/*,normal/red", "-only", "indexed/1?", "-preview", "-verbose", "-"},
			want: cliArgs{
				format: "json", timeout: 250 * time.Millisecond, retries: 3, tty: "/dev/tty",
				only: []string{"primary/*", "normal/red", "indexed/1?"}, preview: true, verbose: true, output: "-",
			},
		},
		{
			name: "version needs no output",
			argv: []string{"-version"},
			want: cliArgs{version: true},
		},
		{
			name:    "missing output",
			argv:    []string{"-format", "yaml"},
			wantErr: errUsage,
		},
		{
			name:    "two outputs",
			argv:    []string{"a.lua", "b.lua"},
			wantErr: errUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseFlags(tt.argv, io.Discard)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("parseFlags() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if got.format != tt.want.format || got.timeout != tt.want.timeout || got.retries != tt.want.retries ||
				got.tty != tt.want.tty || got.preview != tt.want.preview || got.verbose != tt.want.verbose ||
				got.version != tt.want.version || got.output != tt.want.output {
				t.Errorf("parseFlags() = %+v, want %+v", got, tt.want)
			}
			if len(got.only) != len(tt.want.only) {
				t.Fatalf("only = %v, want %v", got.only, tt.want.only)
			}
			for i := range got.only {
				if got.only[i] != tt.want.only[i] {
					t.Errorf("only[%d] = %q, want %q", i, got.only[i], tt.want.only[i])
				}
			}
		})
	}
}

func TestParseFlags_BadValue(t *testing.T) {
	t.Parallel()

	if _, err := parseFlags([]string{"-timeout", "soon", "out.lua"}, io.Discard); err == nil {
		t.Error("expected error for unparsable duration")
	}
}

func TestOverrides(t *testing.T) {
	t.Parallel()

	s := cliArgs{timeout: 1500 * time.Millisecond, retries: 4, format: "yaml"}.overrides()
	if s.TimeoutMS != 1500 || s.Retries != 4 || s.Format != "yaml" {
		t.Errorf("overrides() = %+v", s)
	}
}
