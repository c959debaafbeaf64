package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dkoosis/cifmt/pkg/adapter"
	"github.com/dkoosis/cifmt/pkg/ci"
)

// Sources a resolved value can come from.
const (
	SourceCLI     = "cli"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceDefault = "default"
)

// CliFlags holds the values of command-line flags. The *Set fields record
// whether the user passed the flag explicitly.
type CliFlags struct {
	Platform  string
	Tool      string
	ChunkSize int
	Color     string
	Verbosity int

	PlatformSet  bool
	ToolSet      bool
	ChunkSizeSet bool
	ColorSet     bool
	VerbositySet bool
}

// Resolved is the final configuration after applying all priority rules.
type Resolved struct {
	Platform  string
	Tool      string
	ChunkSize int
	Color     string
	Verbosity int

	// ConfigPath is the file that was loaded, or "".
	ConfigPath string

	PlatformSource  string
	ToolSource      string
	ChunkSizeSource string
	ColorSource     string
	VerbositySource string
}

// Resolve merges flags, environment, config file and defaults.
func Resolve(flags CliFlags) (*Resolved, error) {
	file, path, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return resolve(flags, file, path)
}

func resolve(flags CliFlags, file *FileConfig, path string) (*Resolved, error) {
	r := &Resolved{
		Platform:        DefaultPlatform,
		ChunkSize:       DefaultChunkSize,
		Color:           DefaultColor,
		ConfigPath:      path,
		PlatformSource:  SourceDefault,
		ToolSource:      SourceDefault,
		ChunkSizeSource: SourceDefault,
		ColorSource:     SourceDefault,
		VerbositySource: SourceDefault,
	}

	// File
	if file.Platform != nil {
		r.Platform, r.PlatformSource = *file.Platform, SourceFile
	}
	if file.Tool != nil {
		r.Tool, r.ToolSource = *file.Tool, SourceFile
	}
	if file.ChunkSize != nil {
		r.ChunkSize, r.ChunkSizeSource = *file.ChunkSize, SourceFile
	}
	if file.Color != nil {
		r.Color, r.ColorSource = *file.Color, SourceFile
	}
	if file.Verbosity != nil {
		r.Verbosity, r.VerbositySource = *file.Verbosity, SourceFile
	}

	// Environment
	if v := os.Getenv("CIFMT_PLATFORM"); v != "" {
		r.Platform, r.PlatformSource = v, SourceEnv
	}
	if v := os.Getenv("CIFMT_TOOL"); v != "" {
		r.Tool, r.ToolSource = v, SourceEnv
	}
	if n, ok, err := getEnvInt("CIFMT_CHUNK_SIZE"); err != nil {
		return nil, err
	} else if ok {
		r.ChunkSize, r.ChunkSizeSource = n, SourceEnv
	}
	if n, ok, err := getEnvInt("CIFMT_VERBOSITY"); err != nil {
		return nil, err
	} else if ok {
		r.Verbosity, r.VerbositySource = n, SourceEnv
	}
	if os.Getenv("NO_COLOR") != "" {
		r.Color, r.ColorSource = ColorNever, SourceEnv
	}

	// CLI
	if flags.PlatformSet {
		r.Platform, r.PlatformSource = flags.Platform, SourceCLI
	}
	if flags.ToolSet {
		r.Tool, r.ToolSource = flags.Tool, SourceCLI
	}
	if flags.ChunkSizeSet {
		r.ChunkSize, r.ChunkSizeSource = flags.ChunkSize, SourceCLI
	}
	if flags.ColorSet {
		r.Color, r.ColorSource = flags.Color, SourceCLI
	}
	if flags.VerbositySet {
		r.Verbosity, r.VerbositySource = flags.Verbosity, SourceCLI
	}

	r.Platform = strings.ToLower(strings.TrimSpace(r.Platform))
	r.Tool = strings.ToLower(strings.TrimSpace(r.Tool))
	r.Color = strings.ToLower(strings.TrimSpace(r.Color))
	if r.Verbosity > MaxVerbosity {
		r.Verbosity = MaxVerbosity
	}

	if err := validateResolved(r); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return r, nil
}

// getEnvInt reads an integer environment variable. ok is false when it is
// unset or empty.
func getEnvInt(key string) (n int, ok bool, err error) {
	val := os.Getenv(key)
	if val == "" {
		return 0, false, nil
	}
	n, err = strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s value %q: %w", key, val, err)
	}
	return n, true, nil
}

func validateResolved(r *Resolved) error {
	switch r.Platform {
	case ci.NameAuto, ci.NameGitHub, ci.NamePlain:
	default:
		return fmt.Errorf("invalid platform value: %s (must be: auto, github, plain)", r.Platform)
	}

	if r.Tool != "" {
		if _, err := adapter.ParseKind(r.Tool); err != nil {
			return err
		}
	}

	if r.ChunkSize <= 0 || r.ChunkSize > MaxChunkSize {
		return fmt.Errorf("chunk_size must be between 1 and %d, got: %d", MaxChunkSize, r.ChunkSize)
	}

	switch r.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color value: %s (must be: auto, always, never)", r.Color)
	}

	if r.Verbosity < 0 {
		return fmt.Errorf("verbosity must not be negative, got: %d", r.Verbosity)
	}
	return nil
}
