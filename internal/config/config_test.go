package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"
)

type testCLI struct {
	LogLevel string `kong:"default='info'"`
	MaxDepth int    `kong:"default='512'"`
	Zstd     bool
	Dev      struct {
		CPUProf string `kong:"name='cpu-prof'"`
	} `kong:"embed,prefix='dev.'"`
}

func TestJSONC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  string
		args    []string
		want    testCLI
		wantErr bool
	}{
		{
			name: "comments and trailing commas",
			config: `{
				// level for the whole run
				"log-level": "debug",
				"max_depth": 16, /* nesting */
			}`,
			want: testCLI{LogLevel: "debug", MaxDepth: 16},
		},
		{
			name:   "camel case and nested objects",
			config: `{"logLevel":"warn","zstd":true,"dev":{"cpuProf":"cpu.out"}}`,
			want: func() testCLI {
				c := testCLI{LogLevel: "warn", MaxDepth: 512, Zstd: true}
				c.Dev.CPUProf = "cpu.out"
				return c
			}(),
		},
		{
			name:   "flags override the file",
			config: `{"log-level":"debug"}`,
			args:   []string{"--log-level=error"},
			want:   testCLI{LogLevel: "error", MaxDepth: 512},
		},
		{
			name:   "null keeps the default",
			config: `{"max-depth":null}`,
			want:   testCLI{LogLevel: "info", MaxDepth: 512},
		},
		{name: "empty file", config: "  // nothing\n", want: testCLI{LogLevel: "info", MaxDepth: 512}},
		{name: "not an object", config: `[1]`, wantErr: true},
		{name: "broken", config: `{"log-level" "x"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			if err := os.WriteFile(path, []byte(tt.config), 0644); err != nil {
				t.Fatal(err)
			}

			var cli testCLI
			parser, err := kong.New(&cli, kong.Configuration(JSONC, path), kong.Exit(func(int) {}))
			if err != nil {
				if tt.wantErr {
					return
				}
				t.Fatalf("unexpected error: %v", err)
			}

			_, err = parser.Parse(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tt.want, cli); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCamelCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "log-level", want: "logLevel"},
		{input: "cpu-prof", want: "cpuProf"},
		{input: "zstd", want: "zstd"},
		{input: "a--b", want: "aB"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := camelCase(tt.input); got != tt.want {
				t.Errorf("camelCase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersion_String(t *testing.T) {
	t.Parallel()

	got := Version{Version: "v1.0.0", Revision: "abc"}.String()
	if !strings.Contains(got, "v1.0.0") || !strings.Contains(got, "abc") {
		t.Errorf("String() = %q", got)
	}
}
