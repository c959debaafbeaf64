package libtest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Message
	}{
		{
			name: "suite discovery",
			line: `{"type":"suite","event":"discovery"}`,
			want: SuiteDiscovery{},
		},
		{
			name: "suite started",
			line: `{"type":"suite","event":"started","test_count":2}`,
			want: SuiteStarted{TestCount: 2},
		},
		{
			name: "suite ok",
			line: `{"type":"suite","event":"ok","passed":40,"failed":0,"ignored":2,"measured":0,"filtered_out":5,"exec_time":1.234}`,
			want: SuiteOk{SuiteCounts{Passed: 40, Ignored: 2, FilteredOut: 5, ExecTime: ptr(1.234)}},
		},
		{
			name: "test failed",
			line: `{"type":"test","event":"failed","name":"tests::it_breaks","stdout":"thread panicked\n"}`,
			want: TestFailed{Name: "tests::it_breaks", Stdout: ptr("thread panicked\n")},
		},
		{
			name: "bench",
			line: `{"type":"bench","name":"bench_add","median":120,"deviation":7,"mib_per_second":512}`,
			want: Bench{Name: "bench_add", Median: 120, Deviation: 7, MibPerSecond: ptr(uint64(512))},
		},
		{
			name: "report",
			line: `{"type":"report","total_time":2.5,"compilation_time":1.25}`,
			want: Report{TotalTime: 2.5, CompilationTime: 1.25},
		},
		{
			name: "unknown keys ignored",
			line: `{"type":"test","event":"started","name":"a","worker":3}`,
			want: TestStarted{Name: "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.line))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr string
	}{
		{name: "plain text", line: `running 2 tests`, wantErr: "not a JSON object"},
		{name: "missing type", line: `{"event":"ok"}`, wantErr: `missing field "type"`},
		{name: "unknown type", line: `{"type":"doctest"}`, wantErr: `unknown type "doctest"`},
		{name: "missing event", line: `{"type":"suite"}`, wantErr: `missing field "event"`},
		{name: "unknown event", line: `{"type":"test","event":"flaky","name":"a"}`, wantErr: `unknown test event "flaky"`},
		{name: "missing count", line: `{"type":"suite","event":"ok","passed":1,"failed":0,"ignored":0,"measured":0}`, wantErr: `missing field "filtered_out"`},
		{name: "missing name", line: `{"type":"test","event":"ok"}`, wantErr: `missing field "name"`},
		{name: "negative median", line: `{"type":"bench","name":"b","median":-1,"deviation":0}`, wantErr: "cannot unmarshal"},
		{name: "mistyped type tag", line: `{"type":7}`, wantErr: `field "type"`},
		{name: "negative count", line: `{"type":"suite","event":"failed","passed":1,"failed":-3,"ignored":0,"measured":0,"filtered_out":0}`, wantErr: "cannot unmarshal"},
		{name: "negative test count", line: `{"type":"suite","event":"started","test_count":-1}`, wantErr: "cannot unmarshal"},
		{name: "null count", line: `{"type":"suite","event":"ok","passed":null,"failed":0,"ignored":0,"measured":0,"filtered_out":0}`, wantErr: `field "passed" is null`},
		{name: "null name", line: `{"type":"test","event":"failed","name":null}`, wantErr: `field "name" is null`},
		{name: "null ignore flag", line: `{"type":"test","event":"discovered","name":"a","ignore":null,"source_path":"a.rs","start_line":1,"start_col":1,"end_line":1,"end_col":2}`, wantErr: `field "ignore" is null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.line))
			require.Error(t, err)
			assert.Nil(t, got)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	counts := SuiteCounts{Passed: 3, Failed: 1, Ignored: 1, Measured: 0, FilteredOut: 2, ExecTime: ptr(0.5)}
	messages := []Message{
		SuiteDiscovery{},
		SuiteCompleted{Tests: 4, Benchmarks: 1, Total: 5, Ignored: 1},
		SuiteStarted{TestCount: 4, ShuffleSeed: ptr(uint64(99))},
		SuiteOk{counts},
		SuiteFailed{counts},
		TestDiscovered{Name: "a", Ignore: true, IgnoreMessage: ptr("slow"), SourcePath: "src/lib.rs", StartLine: 1, StartCol: 2, EndLine: 3, EndCol: 4},
		TestStarted{Name: "a"},
		TestOk{Name: "a", ExecTime: ptr(0.01), Stdout: ptr("hello\n")},
		TestFailed{Name: "b", ExecTime: ptr(0.02), Message: ptr("assertion failed")},
		TestTimeout{Name: "c"},
		TestIgnored{Name: "d", Message: ptr("needs network")},
		Bench{Name: "e", Median: 10, Deviation: 1},
		Report{TotalTime: 1.5, CompilationTime: 0.75},
	}

	for _, m := range messages {
		t.Run(m.Kind()+"/"+m.Event(), func(t *testing.T) {
			data, err := Encode(m)
			require.NoError(t, err)

			got, err := Decode(data)
			require.NoError(t, err, string(data))
			if diff := cmp.Diff(m, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncode_TagsFirst(t *testing.T) {
	data, err := Encode(SuiteDiscovery{})
	require.NoError(t, err)
	assert.Equal(t, `{"type":"suite","event":"discovery"}`, string(data))

	data, err = Encode(Report{TotalTime: 1, CompilationTime: 0.5})
	require.NoError(t, err)
	assert.Equal(t, `{"type":"report","total_time":1,"compilation_time":0.5}`, string(data))

	_, err = Encode(nil)
	assert.Error(t, err)
}
