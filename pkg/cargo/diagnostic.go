package cargo

import (
	"encoding/json"
	"fmt"

	"github.com/dkoosis/cifmt/internal/wire"
)

// Diagnostic is a compiler diagnostic: an error, warning, or one of the
// notes and help messages attached to them as children.
type Diagnostic struct {
	Message  string       `json:"message"`
	Code     *Code        `json:"code"`
	Level    Level        `json:"level"`
	Spans    []Span       `json:"spans"`
	Children []Diagnostic `json:"children"`
	Rendered *string      `json:"rendered"`
}

// Code identifies the lint or error code of a diagnostic.
type Code struct {
	Code        string  `json:"code"`
	Explanation *string `json:"explanation"`
}

// Span is a source location a diagnostic points at. Lines and columns are
// 1-based.
type Span struct {
	FileName                string         `json:"file_name"`
	ByteStart               int            `json:"byte_start"`
	ByteEnd                 int            `json:"byte_end"`
	LineStart               int            `json:"line_start"`
	LineEnd                 int            `json:"line_end"`
	ColumnStart             int            `json:"column_start"`
	ColumnEnd               int            `json:"column_end"`
	IsPrimary               bool           `json:"is_primary"`
	Text                    []SpanLine     `json:"text"`
	Label                   *string        `json:"label"`
	SuggestedReplacement    *string        `json:"suggested_replacement"`
	SuggestionApplicability *Applicability `json:"suggestion_applicability"`
	Expansion               *Expansion     `json:"expansion"`
}

// SpanLine is one line of source covered by a span.
type SpanLine struct {
	Text           string `json:"text"`
	HighlightStart int    `json:"highlight_start"`
	HighlightEnd   int    `json:"highlight_end"`
}

// Expansion records the macro invocation a span was expanded from. Spans
// nest through it to arbitrary depth.
type Expansion struct {
	Span          Span   `json:"span"`
	MacroDeclName string `json:"macro_decl_name"`
	DefSiteSpan   *Span  `json:"def_site_span"`
}

// PrimarySpan returns the first span flagged primary, or nil.
func (d Diagnostic) PrimarySpan() *Span {
	for i := range d.Spans {
		if d.Spans[i].IsPrimary {
			return &d.Spans[i]
		}
	}
	return nil
}

// Title is the annotation title for the diagnostic: the level, followed by
// the code when one is present.
func (d Diagnostic) Title() string {
	if d.Code != nil {
		return d.Level.String() + ": " + d.Code.Code
	}
	return d.Level.String()
}

// Level is the severity of a diagnostic.
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelNote
	LevelHelp
	LevelFailureNote
	LevelInternalCompilerError
)

var levelNames = [...]string{
	LevelError:                 "error",
	LevelWarning:               "warning",
	LevelNote:                  "note",
	LevelHelp:                  "help",
	LevelFailureNote:           "failure-note",
	LevelInternalCompilerError: "error: internal compiler error",
}

// String returns the wire spelling of the level.
func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel maps a wire spelling back to a Level.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown diagnostic level %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if l < 0 || int(l) >= len(levelNames) {
		return nil, fmt.Errorf("invalid diagnostic level %d", int(l))
	}
	return []byte(levelNames[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	v, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Applicability says how confident rustc is in a suggested replacement.
type Applicability string

const (
	MachineApplicable Applicability = "MachineApplicable"
	MaybeIncorrect    Applicability = "MaybeIncorrect"
	HasPlaceholders   Applicability = "HasPlaceholders"
	Unspecified       Applicability = "Unspecified"
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Applicability) UnmarshalText(text []byte) error {
	switch v := Applicability(text); v {
	case MachineApplicable, MaybeIncorrect, HasPlaceholders, Unspecified:
		*a = v
		return nil
	default:
		return fmt.Errorf("unknown suggestion applicability %q", string(text))
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Diagnostic) UnmarshalJSON(data []byte) error {
	type plain Diagnostic
	return wire.Decode(data, (*plain)(d), "message", "level", "spans", "children")
}

// MarshalJSON implements json.Marshaler.
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	type plain Diagnostic
	d.Spans = wire.NonNil(d.Spans)
	d.Children = wire.NonNil(d.Children)
	return json.Marshal(plain(d))
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Code) UnmarshalJSON(data []byte) error {
	type plain Code
	return wire.Decode(data, (*plain)(c), "code")
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Span) UnmarshalJSON(data []byte) error {
	type plain Span
	return wire.Decode(data, (*plain)(s),
		"file_name", "byte_start", "byte_end", "line_start", "line_end",
		"column_start", "column_end", "is_primary", "text")
}

// MarshalJSON implements json.Marshaler.
func (s Span) MarshalJSON() ([]byte, error) {
	type plain Span
	s.Text = wire.NonNil(s.Text)
	return json.Marshal(plain(s))
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *SpanLine) UnmarshalJSON(data []byte) error {
	type plain SpanLine
	return wire.Decode(data, (*plain)(l), "text", "highlight_start", "highlight_end")
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Expansion) UnmarshalJSON(data []byte) error {
	type plain Expansion
	return wire.Decode(data, (*plain)(e), "span", "macro_decl_name")
}
