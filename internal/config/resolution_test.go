package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CIFMT_PLATFORM", "CIFMT_TOOL", "CIFMT_CHUNK_SIZE", "CIFMT_VERBOSITY", "NO_COLOR"} {
		t.Setenv(k, "")
	}
}

func TestResolve_Defaults(t *testing.T) {
	clearEnv(t)

	r, err := resolve(CliFlags{}, &FileConfig{}, "")
	require.NoError(t, err)
	assert.Equal(t, &Resolved{
		Platform:        "auto",
		ChunkSize:       16384,
		Color:           "auto",
		PlatformSource:  SourceDefault,
		ToolSource:      SourceDefault,
		ChunkSizeSource: SourceDefault,
		ColorSource:     SourceDefault,
		VerbositySource: SourceDefault,
	}, r)
}

func TestResolve_PriorityOrder(t *testing.T) {
	file := &FileConfig{
		Platform:  strPtr("plain"),
		Tool:      strPtr("cargo-check"),
		ChunkSize: intPtr(1024),
		Color:     strPtr("always"),
		Verbosity: intPtr(1),
	}

	tests := []struct {
		name       string
		flags      CliFlags
		env        map[string]string
		wantValue  string
		wantSource string
		get        func(*Resolved) (string, string)
	}{
		{
			name:       "file beats default",
			get:        func(r *Resolved) (string, string) { return r.Platform, r.PlatformSource },
			wantValue:  "plain",
			wantSource: SourceFile,
		},
		{
			name:       "env beats file",
			env:        map[string]string{"CIFMT_PLATFORM": "github"},
			get:        func(r *Resolved) (string, string) { return r.Platform, r.PlatformSource },
			wantValue:  "github",
			wantSource: SourceEnv,
		},
		{
			name:       "cli beats env",
			flags:      CliFlags{Platform: "auto", PlatformSet: true},
			env:        map[string]string{"CIFMT_PLATFORM": "github"},
			get:        func(r *Resolved) (string, string) { return r.Platform, r.PlatformSource },
			wantValue:  "auto",
			wantSource: SourceCLI,
		},
		{
			name:       "tool from env",
			env:        map[string]string{"CIFMT_TOOL": "Cargo-Libtest"},
			get:        func(r *Resolved) (string, string) { return r.Tool, r.ToolSource },
			wantValue:  "cargo-libtest",
			wantSource: SourceEnv,
		},
		{
			name:       "unset flag does not override",
			flags:      CliFlags{Tool: "cargo-libtest"},
			get:        func(r *Resolved) (string, string) { return r.Tool, r.ToolSource },
			wantValue:  "cargo-check",
			wantSource: SourceFile,
		},
		{
			name:       "NO_COLOR forces never",
			env:        map[string]string{"NO_COLOR": "1"},
			get:        func(r *Resolved) (string, string) { return r.Color, r.ColorSource },
			wantValue:  "never",
			wantSource: SourceEnv,
		},
		{
			name:       "color flag beats NO_COLOR",
			flags:      CliFlags{Color: "always", ColorSet: true},
			env:        map[string]string{"NO_COLOR": "1"},
			get:        func(r *Resolved) (string, string) { return r.Color, r.ColorSource },
			wantValue:  "always",
			wantSource: SourceCLI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			r, err := resolve(tt.flags, file, "/tmp/.cifmt.yaml")
			require.NoError(t, err)
			value, source := tt.get(r)
			assert.Equal(t, tt.wantValue, value)
			assert.Equal(t, tt.wantSource, source)
			assert.Equal(t, "/tmp/.cifmt.yaml", r.ConfigPath)
		})
	}
}

func TestResolve_NumericEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CIFMT_CHUNK_SIZE", "512")
	t.Setenv("CIFMT_VERBOSITY", "5")

	r, err := resolve(CliFlags{}, &FileConfig{}, "")
	require.NoError(t, err)
	assert.Equal(t, 512, r.ChunkSize)
	assert.Equal(t, SourceEnv, r.ChunkSizeSource)
	assert.Equal(t, MaxVerbosity, r.Verbosity, "verbosity is capped")

	t.Setenv("CIFMT_CHUNK_SIZE", "big")
	_, err = resolve(CliFlags{}, &FileConfig{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CIFMT_CHUNK_SIZE")
}

func TestResolve_Validation(t *testing.T) {
	tests := []struct {
		name    string
		flags   CliFlags
		wantErr string
	}{
		{name: "unknown platform", flags: CliFlags{Platform: "gitlab", PlatformSet: true}, wantErr: "invalid platform value: gitlab"},
		{name: "unknown tool", flags: CliFlags{Tool: "go-test", ToolSet: true}, wantErr: `unknown tool "go-test"`},
		{name: "zero chunk size", flags: CliFlags{ChunkSize: 0, ChunkSizeSet: true}, wantErr: "chunk_size must be between"},
		{name: "huge chunk size", flags: CliFlags{ChunkSize: MaxChunkSize + 1, ChunkSizeSet: true}, wantErr: "chunk_size must be between"},
		{name: "unknown color", flags: CliFlags{Color: "sometimes", ColorSet: true}, wantErr: "invalid color value"},
		{name: "negative verbosity", flags: CliFlags{Verbosity: -1, VerbositySet: true}, wantErr: "verbosity must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := resolve(tt.flags, &FileConfig{}, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolve_ReadsConfigFile(t *testing.T) {
	clearEnv(t)
	tempDir := t.TempDir()
	chdir(t, tempDir)
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, FileName), []byte("platform: github\ntool: cargo-libtest\n"), 0o600))

	r, err := Resolve(CliFlags{})
	require.NoError(t, err)
	assert.Equal(t, "github", r.Platform)
	assert.Equal(t, "cargo-libtest", r.Tool)
	assert.Equal(t, FileName, r.ConfigPath)
}

func TestResolve_BrokenConfigFile(t *testing.T) {
	clearEnv(t)
	tempDir := t.TempDir()
	chdir(t, tempDir)
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, FileName), []byte("platform: [\n"), 0o600))

	_, err := Resolve(CliFlags{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), FileName)
}
