package cargo

import (
	"encoding/json"

	"github.com/dkoosis/cifmt/internal/wire"
)

// Target describes the compilation target a record refers to.
type Target struct {
	Kind             []string `json:"kind"`
	CrateTypes       []string `json:"crate_types"`
	Name             string   `json:"name"`
	SrcPath          string   `json:"src_path"`
	Edition          string   `json:"edition"`
	RequiredFeatures []string `json:"required_features,omitempty"`
	Doc              bool     `json:"doc"`
	Doctest          bool     `json:"doctest"`
	Test             bool     `json:"test"`
}

// Profile is the build profile an artifact was compiled with.
type Profile struct {
	OptLevel string `json:"opt_level"`
	// Debuginfo is a number or a string depending on the cargo version.
	Debuginfo       any  `json:"debuginfo"`
	DebugAssertions bool `json:"debug_assertions"`
	OverflowChecks  bool `json:"overflow_checks"`
	Test            bool `json:"test"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Target) UnmarshalJSON(data []byte) error {
	type plain Target
	return wire.Decode(data, (*plain)(t),
		"kind", "crate_types", "name", "src_path", "edition", "doc", "doctest", "test")
}

// MarshalJSON implements json.Marshaler.
func (t Target) MarshalJSON() ([]byte, error) {
	type plain Target
	t.Kind = wire.NonNil(t.Kind)
	t.CrateTypes = wire.NonNil(t.CrateTypes)
	return json.Marshal(plain(t))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type plain Profile
	return wire.Decode(data, (*plain)(p),
		"opt_level", "debug_assertions", "overflow_checks", "test")
}
