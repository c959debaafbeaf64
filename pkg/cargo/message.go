// Package cargo models the records cargo emits with --message-format=json.
//
// Every line of that stream is one JSON object whose "reason" field names the
// variant. Decode turns a line into one of the Message variants below and
// Encode turns it back; unknown keys are ignored so newer cargo releases keep
// decoding.
package cargo

import (
	"encoding/json"
	"fmt"

	"github.com/dkoosis/cifmt/internal/wire"
)

// Reason is the value of the "reason" discriminant.
type Reason string

// Known reasons.
const (
	ReasonCompilerMessage     Reason = "compiler-message"
	ReasonCompilerArtifact    Reason = "compiler-artifact"
	ReasonBuildScriptExecuted Reason = "build-script-executed"
	ReasonBuildFinished       Reason = "build-finished"
)

// Message is one cargo record. The concrete type is one of CompilerMessage,
// CompilerArtifact, BuildScriptExecuted or BuildFinished.
type Message interface {
	Reason() Reason
}

// CompilerMessage wraps a message produced by rustc while building a package.
type CompilerMessage struct {
	PackageID    string       `json:"package_id"`
	ManifestPath string       `json:"manifest_path"`
	Target       Target       `json:"target"`
	Message      RustcMessage `json:"message"`
}

// CompilerArtifact reports a finished compilation unit.
type CompilerArtifact struct {
	PackageID    string   `json:"package_id"`
	ManifestPath string   `json:"manifest_path"`
	Target       Target   `json:"target"`
	Profile      Profile  `json:"profile"`
	Features     []string `json:"features"`
	Filenames    []string `json:"filenames"`
	Executable   *string  `json:"executable"`
	Fresh        bool     `json:"fresh"`
}

// BuildScriptExecuted reports the outputs of a package's build script.
type BuildScriptExecuted struct {
	PackageID   string   `json:"package_id"`
	LinkedLibs  []string `json:"linked_libs"`
	LinkedPaths []string `json:"linked_paths"`
	Cfgs        []string `json:"cfgs"`
	Env         []EnvVar `json:"env"`
	OutDir      string   `json:"out_dir"`
}

// BuildFinished is the last record of a build.
type BuildFinished struct {
	Success bool `json:"success"`
}

// EnvVar is one key/value pair set by a build script. On the wire it is a
// two-element array.
type EnvVar struct {
	Key   string
	Value string
}

func (CompilerMessage) Reason() Reason     { return ReasonCompilerMessage }
func (CompilerArtifact) Reason() Reason    { return ReasonCompilerArtifact }
func (BuildScriptExecuted) Reason() Reason { return ReasonBuildScriptExecuted }
func (BuildFinished) Reason() Reason       { return ReasonBuildFinished }

// Decode parses one cargo JSON record.
func Decode(line []byte) (Message, error) {
	obj, err := wire.Parse(line)
	if err != nil {
		return nil, err
	}
	reason, err := obj.Tag("reason")
	if err != nil {
		return nil, err
	}

	switch Reason(reason) {
	case ReasonCompilerMessage:
		return unmarshal[CompilerMessage](line)
	case ReasonCompilerArtifact:
		return unmarshal[CompilerArtifact](line)
	case ReasonBuildScriptExecuted:
		return unmarshal[BuildScriptExecuted](line)
	case ReasonBuildFinished:
		return unmarshal[BuildFinished](line)
	default:
		return nil, fmt.Errorf("unknown reason %q", reason)
	}
}

func unmarshal[T Message](line []byte) (Message, error) {
	var v T
	if err := json.Unmarshal(line, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Encode renders m in its wire form, "reason" first.
func Encode(m Message) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("encode: nil message")
	}
	return wire.Tagged(m, "reason", string(m.Reason()))
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *CompilerMessage) UnmarshalJSON(data []byte) error {
	var raw struct {
		PackageID    string          `json:"package_id"`
		ManifestPath string          `json:"manifest_path"`
		Target       Target          `json:"target"`
		Message      json.RawMessage `json:"message"`
	}
	if err := wire.Decode(data, &raw, "package_id", "manifest_path", "target", "message"); err != nil {
		return err
	}
	msg, err := DecodeRustc(raw.Message)
	if err != nil {
		return fmt.Errorf("message: %w", err)
	}
	*m = CompilerMessage{
		PackageID:    raw.PackageID,
		ManifestPath: raw.ManifestPath,
		Target:       raw.Target,
		Message:      msg,
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (m CompilerMessage) MarshalJSON() ([]byte, error) {
	msg, err := EncodeRustc(m.Message)
	if err != nil {
		return nil, fmt.Errorf("message: %w", err)
	}
	return json.Marshal(struct {
		PackageID    string          `json:"package_id"`
		ManifestPath string          `json:"manifest_path"`
		Target       Target          `json:"target"`
		Message      json.RawMessage `json:"message"`
	}{m.PackageID, m.ManifestPath, m.Target, msg})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *CompilerArtifact) UnmarshalJSON(data []byte) error {
	type plain CompilerArtifact
	return wire.Decode(data, (*plain)(m),
		"package_id", "manifest_path", "target", "profile", "features", "filenames", "fresh")
}

// MarshalJSON implements json.Marshaler.
func (m CompilerArtifact) MarshalJSON() ([]byte, error) {
	type plain CompilerArtifact
	m.Features = wire.NonNil(m.Features)
	m.Filenames = wire.NonNil(m.Filenames)
	return json.Marshal(plain(m))
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *BuildScriptExecuted) UnmarshalJSON(data []byte) error {
	type plain BuildScriptExecuted
	return wire.Decode(data, (*plain)(m),
		"package_id", "linked_libs", "linked_paths", "cfgs", "env", "out_dir")
}

// MarshalJSON implements json.Marshaler.
func (m BuildScriptExecuted) MarshalJSON() ([]byte, error) {
	type plain BuildScriptExecuted
	m.LinkedLibs = wire.NonNil(m.LinkedLibs)
	m.LinkedPaths = wire.NonNil(m.LinkedPaths)
	m.Cfgs = wire.NonNil(m.Cfgs)
	m.Env = wire.NonNil(m.Env)
	return json.Marshal(plain(m))
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *BuildFinished) UnmarshalJSON(data []byte) error {
	type plain BuildFinished
	return wire.Decode(data, (*plain)(m), "success")
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *EnvVar) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("env entry: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("env entry: want 2 elements, got %d", len(pair))
	}
	e.Key, e.Value = pair[0], pair[1]
	return nil
}

// MarshalJSON implements json.Marshaler.
func (e EnvVar) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{e.Key, e.Value})
}
