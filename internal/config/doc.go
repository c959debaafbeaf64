// Package config handles configuration loading and merging for cifmt.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--platform, --chunk-size, --color, -v and the tool argument)
//  2. Environment variables (CIFMT_PLATFORM, CIFMT_TOOL, CIFMT_CHUNK_SIZE, CIFMT_VERBOSITY, NO_COLOR)
//  3. YAML config file (.cifmt.yaml in the working directory or $XDG_CONFIG_HOME/cifmt/.cifmt.yaml)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
//
// # Key Configuration Options
//
//   - Platform: auto, github or plain. auto picks github when GITHUB_ACTIONS is set.
//   - Tool: cargo-check or cargo-libtest. Empty means detect from the first chunk.
//   - ChunkSize: bytes read from stdin per call into the parser.
//   - Color: auto, always or never. Only plain output is ever coloured.
//   - Verbosity: 0 logs warnings, 1 adds info, 2 adds debug.
//
// # Environment Variables
//
//   - CIFMT_PLATFORM, CIFMT_TOOL, CIFMT_CHUNK_SIZE, CIFMT_VERBOSITY: same values as the flags
//   - NO_COLOR: any non-empty value forces color to never
package config
