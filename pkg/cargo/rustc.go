package cargo

import (
	"encoding/json"
	"fmt"

	"github.com/dkoosis/cifmt/internal/wire"
)

// RustcMessage is the payload of a CompilerMessage, tagged on the wire by
// "$message_type". The concrete type is one of Diagnostic, Artifact,
// FutureIncompat, UnusedExterns or SectionTiming.
type RustcMessage interface {
	MessageType() string
}

// Artifact is a file rustc emitted.
type Artifact struct {
	Artifact string   `json:"artifact"`
	Emit     EmitKind `json:"emit"`
}

// FutureIncompat lists diagnostics that will become hard errors in a future
// release.
type FutureIncompat struct {
	FutureIncompatReport []FutureIncompatEntry `json:"future_incompat_report"`
}

// FutureIncompatEntry is one entry of a future-incompatibility report.
type FutureIncompatEntry struct {
	Diagnostic Diagnostic `json:"diagnostic"`
}

// UnusedExterns lists dependencies the crate never referenced.
type UnusedExterns struct {
	LintLevel   string   `json:"lint_level"`
	UnusedNames []string `json:"unused_names"`
}

// SectionTiming marks the start or end of a compilation section. Time is in
// microseconds.
type SectionTiming struct {
	Event TimingEvent `json:"event"`
	Name  string      `json:"name"`
	Time  uint64      `json:"time"`
}

func (Diagnostic) MessageType() string     { return "diagnostic" }
func (Artifact) MessageType() string       { return "artifact" }
func (FutureIncompat) MessageType() string { return "future_incompat" }
func (UnusedExterns) MessageType() string  { return "unused_externs" }
func (SectionTiming) MessageType() string  { return "section_timing" }

// DecodeRustc parses a rustc JSON message. A message without
// "$message_type" is decoded as a Diagnostic, which is what rustc emitted
// before the tag existed.
func DecodeRustc(data []byte) (RustcMessage, error) {
	obj, err := wire.Parse(data)
	if err != nil {
		return nil, err
	}
	kind := "diagnostic"
	if _, ok := obj["$message_type"]; ok {
		if kind, err = obj.Tag("$message_type"); err != nil {
			return nil, err
		}
	}

	switch kind {
	case "diagnostic":
		return unmarshalRustc[Diagnostic](data)
	case "artifact":
		return unmarshalRustc[Artifact](data)
	case "future_incompat":
		return unmarshalRustc[FutureIncompat](data)
	case "unused_externs":
		return unmarshalRustc[UnusedExterns](data)
	case "section_timing":
		return unmarshalRustc[SectionTiming](data)
	default:
		return nil, fmt.Errorf("unknown $message_type %q", kind)
	}
}

// EncodeRustc renders m with its "$message_type" tag.
func EncodeRustc(m RustcMessage) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("encode: nil rustc message")
	}
	return wire.Tagged(m, "$message_type", m.MessageType())
}

func unmarshalRustc[T RustcMessage](data []byte) (RustcMessage, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Artifact) UnmarshalJSON(data []byte) error {
	type plain Artifact
	return wire.Decode(data, (*plain)(a), "artifact", "emit")
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FutureIncompat) UnmarshalJSON(data []byte) error {
	type plain FutureIncompat
	return wire.Decode(data, (*plain)(f), "future_incompat_report")
}

// MarshalJSON implements json.Marshaler.
func (f FutureIncompat) MarshalJSON() ([]byte, error) {
	type plain FutureIncompat
	f.FutureIncompatReport = wire.NonNil(f.FutureIncompatReport)
	return json.Marshal(plain(f))
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *FutureIncompatEntry) UnmarshalJSON(data []byte) error {
	type plain FutureIncompatEntry
	return wire.Decode(data, (*plain)(e), "diagnostic")
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *UnusedExterns) UnmarshalJSON(data []byte) error {
	type plain UnusedExterns
	return wire.Decode(data, (*plain)(u), "lint_level", "unused_names")
}

// MarshalJSON implements json.Marshaler.
func (u UnusedExterns) MarshalJSON() ([]byte, error) {
	type plain UnusedExterns
	u.UnusedNames = wire.NonNil(u.UnusedNames)
	return json.Marshal(plain(u))
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SectionTiming) UnmarshalJSON(data []byte) error {
	type plain SectionTiming
	return wire.Decode(data, (*plain)(s), "event", "name", "time")
}

// EmitKind is the kind of file an Artifact describes.
type EmitKind string

const (
	EmitLink     EmitKind = "link"
	EmitDepInfo  EmitKind = "dep-info"
	EmitMetadata EmitKind = "metadata"
	EmitAsm      EmitKind = "asm"
	EmitLlvmIR   EmitKind = "llvm-ir"
	EmitLlvmBC   EmitKind = "llvm-bc"
	EmitMir      EmitKind = "mir"
	EmitObj      EmitKind = "obj"
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *EmitKind) UnmarshalText(text []byte) error {
	switch v := EmitKind(text); v {
	case EmitLink, EmitDepInfo, EmitMetadata, EmitAsm, EmitLlvmIR, EmitLlvmBC, EmitMir, EmitObj:
		*k = v
		return nil
	default:
		return fmt.Errorf("unknown emit kind %q", string(text))
	}
}

// TimingEvent is the edge of a compilation section.
type TimingEvent string

const (
	TimingStart TimingEvent = "start"
	TimingEnd   TimingEvent = "end"
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *TimingEvent) UnmarshalText(text []byte) error {
	switch v := TimingEvent(text); v {
	case TimingStart, TimingEnd:
		*e = v
		return nil
	default:
		return fmt.Errorf("unknown timing event %q", string(text))
	}
}
