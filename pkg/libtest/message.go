// Package libtest models the JSON events the Rust test harness emits with
// --format=json.
//
// Records are discriminated by "type" (suite, test, bench, report); suite and
// test records carry a second discriminant, "event".
package libtest

import (
	"encoding/json"
	"fmt"

	"github.com/dkoosis/cifmt/internal/wire"
)

// Message is one libtest record. The concrete type is one of the Suite*,
// Test*, Bench or Report types.
type Message interface {
	// Kind returns the "type" discriminant.
	Kind() string
	// Event returns the "event" discriminant, or "" for bench and report.
	Event() string
}

// SuiteDiscovery opens test discovery.
type SuiteDiscovery struct{}

// SuiteCompleted closes test discovery.
type SuiteCompleted struct {
	Tests      uint64 `json:"tests"`
	Benchmarks uint64 `json:"benchmarks"`
	Total      uint64 `json:"total"`
	Ignored    uint64 `json:"ignored"`
}

// SuiteStarted begins a test run.
type SuiteStarted struct {
	TestCount   uint64  `json:"test_count"`
	ShuffleSeed *uint64 `json:"shuffle_seed,omitempty"`
}

// SuiteCounts is the tally reported when a suite finishes.
type SuiteCounts struct {
	Passed      uint64   `json:"passed"`
	Failed      uint64   `json:"failed"`
	Ignored     uint64   `json:"ignored"`
	Measured    uint64   `json:"measured"`
	FilteredOut uint64   `json:"filtered_out"`
	ExecTime    *float64 `json:"exec_time,omitempty"`
}

// SuiteOk reports a suite in which every test passed.
type SuiteOk struct {
	SuiteCounts
}

// SuiteFailed reports a suite with at least one failure.
type SuiteFailed struct {
	SuiteCounts
}

// TestDiscovered lists a test found during discovery.
type TestDiscovered struct {
	Name          string  `json:"name"`
	Ignore        bool    `json:"ignore"`
	IgnoreMessage *string `json:"ignore_message,omitempty"`
	SourcePath    string  `json:"source_path"`
	StartLine     uint64  `json:"start_line"`
	StartCol      uint64  `json:"start_col"`
	EndLine       uint64  `json:"end_line"`
	EndCol        uint64  `json:"end_col"`
}

// TestStarted marks the start of one test.
type TestStarted struct {
	Name string `json:"name"`
}

// TestOk marks a passing test.
type TestOk struct {
	Name     string   `json:"name"`
	ExecTime *float64 `json:"exec_time,omitempty"`
	Stdout   *string  `json:"stdout,omitempty"`
}

// TestFailed marks a failing test.
type TestFailed struct {
	Name     string   `json:"name"`
	ExecTime *float64 `json:"exec_time,omitempty"`
	Stdout   *string  `json:"stdout,omitempty"`
	Message  *string  `json:"message,omitempty"`
}

// TestTimeout marks a test that exceeded its time limit.
type TestTimeout struct {
	Name string `json:"name"`
}

// TestIgnored marks a skipped test.
type TestIgnored struct {
	Name    string  `json:"name"`
	Message *string `json:"message,omitempty"`
}

// Bench is a benchmark result. Median and deviation are in nanoseconds per
// iteration.
type Bench struct {
	Name         string  `json:"name"`
	Median       uint64  `json:"median"`
	Deviation    uint64  `json:"deviation"`
	MibPerSecond *uint64 `json:"mib_per_second,omitempty"`
}

// Report carries doctest timing.
type Report struct {
	TotalTime       float64 `json:"total_time"`
	CompilationTime float64 `json:"compilation_time"`
}

const (
	kindSuite  = "suite"
	kindTest   = "test"
	kindBench  = "bench"
	kindReport = "report"
)

func (SuiteDiscovery) Kind() string  { return kindSuite }
func (SuiteCompleted) Kind() string  { return kindSuite }
func (SuiteStarted) Kind() string    { return kindSuite }
func (SuiteOk) Kind() string         { return kindSuite }
func (SuiteFailed) Kind() string     { return kindSuite }
func (TestDiscovered) Kind() string  { return kindTest }
func (TestStarted) Kind() string     { return kindTest }
func (TestOk) Kind() string          { return kindTest }
func (TestFailed) Kind() string      { return kindTest }
func (TestTimeout) Kind() string     { return kindTest }
func (TestIgnored) Kind() string     { return kindTest }
func (Bench) Kind() string           { return kindBench }
func (Report) Kind() string          { return kindReport }
func (SuiteDiscovery) Event() string { return "discovery" }
func (SuiteCompleted) Event() string { return "completed" }
func (SuiteStarted) Event() string   { return "started" }
func (SuiteOk) Event() string        { return "ok" }
func (SuiteFailed) Event() string    { return "failed" }
func (TestDiscovered) Event() string { return "discovered" }
func (TestStarted) Event() string    { return "started" }
func (TestOk) Event() string         { return "ok" }
func (TestFailed) Event() string     { return "failed" }
func (TestTimeout) Event() string    { return "timeout" }
func (TestIgnored) Event() string    { return "ignored" }
func (Bench) Event() string          { return "" }
func (Report) Event() string         { return "" }

// required lists the keys each variant must carry, by "type/event".
var required = map[string][]string{
	"suite/discovery":  nil,
	"suite/completed":  {"tests", "benchmarks", "total", "ignored"},
	"suite/started":    {"test_count"},
	"suite/ok":         {"passed", "failed", "ignored", "measured", "filtered_out"},
	"suite/failed":     {"passed", "failed", "ignored", "measured", "filtered_out"},
	"test/discovered":  {"name", "ignore", "source_path", "start_line", "start_col", "end_line", "end_col"},
	"test/started":     {"name"},
	"test/ok":          {"name"},
	"test/failed":      {"name"},
	"test/timeout":     {"name"},
	"test/ignored":     {"name"},
	"bench/":           {"name", "median", "deviation"},
	"report/":          {"total_time", "compilation_time"},
}

// Decode parses one libtest JSON record.
func Decode(line []byte) (Message, error) {
	obj, err := wire.Parse(line)
	if err != nil {
		return nil, err
	}
	kind, err := obj.Tag("type")
	if err != nil {
		return nil, err
	}

	var event string
	switch kind {
	case kindSuite, kindTest:
		if event, err = obj.Tag("event"); err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
	case kindBench, kindReport:
	default:
		return nil, fmt.Errorf("unknown type %q", kind)
	}

	key := kind + "/" + event
	fields, ok := required[key]
	if !ok {
		return nil, fmt.Errorf("unknown %s event %q", kind, event)
	}
	if err := obj.Require(fields...); err != nil {
		return nil, fmt.Errorf("%s %s: %w", kind, event, err)
	}

	var m Message
	switch key {
	case "suite/discovery":
		return SuiteDiscovery{}, nil
	case "suite/completed":
		m, err = unmarshal[SuiteCompleted](line)
	case "suite/started":
		m, err = unmarshal[SuiteStarted](line)
	case "suite/ok":
		m, err = unmarshal[SuiteOk](line)
	case "suite/failed":
		m, err = unmarshal[SuiteFailed](line)
	case "test/discovered":
		m, err = unmarshal[TestDiscovered](line)
	case "test/started":
		m, err = unmarshal[TestStarted](line)
	case "test/ok":
		m, err = unmarshal[TestOk](line)
	case "test/failed":
		m, err = unmarshal[TestFailed](line)
	case "test/timeout":
		m, err = unmarshal[TestTimeout](line)
	case "test/ignored":
		m, err = unmarshal[TestIgnored](line)
	case "bench/":
		m, err = unmarshal[Bench](line)
	case "report/":
		m, err = unmarshal[Report](line)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func unmarshal[T Message](line []byte) (Message, error) {
	var v T
	if err := json.Unmarshal(line, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Encode renders m in its wire form, discriminants first.
func Encode(m Message) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("encode: nil message")
	}
	if ev := m.Event(); ev != "" {
		return wire.Tagged(m, "type", m.Kind(), "event", ev)
	}
	return wire.Tagged(m, "type", m.Kind())
}
