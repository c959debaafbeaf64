package adapter

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/cifmt/pkg/ci"
)

const cargoStream = `{"reason":"build-script-executed","package_id":"sys 0.1.0","linked_libs":[],"linked_paths":[],"cfgs":[],"env":[],"out_dir":"/t/out"}
   Compiling demo v0.1.0
{"reason":"build-finished","success":true}
`

const libtestStream = `{"type":"suite","event":"started","test_count":1}
{"type":"test","event":"started","name":"a"}
{"type":"test","event":"ok","name":"a"}
{"type":"suite","event":"ok","passed":1,"failed":0,"ignored":0,"measured":0,"filtered_out":0,"exec_time":0.5}
`

func TestParseKind(t *testing.T) {
	k, err := ParseKind("cargo-check")
	require.NoError(t, err)
	assert.Equal(t, CargoCheck, k)

	k, err = ParseKind(" Cargo-Libtest ")
	require.NoError(t, err)
	assert.Equal(t, CargoLibtest, k)

	_, err = ParseKind("go-test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cargo-check, cargo-libtest")
}

func TestKinds_PriorityOrder(t *testing.T) {
	assert.Equal(t, []Kind{CargoCheck, CargoLibtest}, Kinds())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func TestNew_Explicit(t *testing.T) {
	a := New(CargoCheck, ci.Plain{})
	assert.Equal(t, "cargo-check", a.Name())
	assert.Equal(t, ci.Plain{}, a.Platform())

	assert.Equal(t, []string{
		"Build script executed: sys 0.1.0",
		"Build finished successfully",
	}, a.Process([]byte(cargoStream)))
	assert.Zero(t, a.Malformed())
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   string
	}{
		{name: "cargo", sample: cargoStream, want: "cargo-check"},
		{name: "libtest", sample: libtestStream, want: "cargo-libtest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Detect([]byte(tt.sample), ci.GitHub{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Name())
			assert.Equal(t, ci.GitHub{}, a.Platform())
		})
	}
}

func TestDetect_NoTool(t *testing.T) {
	for _, sample := range []string{"", "hello\nworld\n", `{"reason":"build-finished","success":true}`} {
		a, err := Detect([]byte(sample), ci.Plain{})
		assert.Nil(t, a)
		assert.True(t, errors.Is(err, ErrNoToolDetected), "sample %q", sample)
		assert.EqualError(t, err, "no tool format detected")
	}
}

func TestDetect_SampleIsReprocessed(t *testing.T) {
	sample := []byte(libtestStream)
	a, err := Detect(sample, ci.GitHub{})
	require.NoError(t, err)

	out := a.Process(sample)
	assert.Equal(t, []string{
		"::notice title=Test Suite Started::Running 1 tests\n",
		"::group::Test: a\n",
		"::notice title=Test Passed: a::\n::endgroup::\n",
		"::notice title=Test Suite Passed::1 passed, 0 failed, 0 ignored, 0 measured, 0 filtered out in 0.50s\n",
	}, out)
}

func TestProcess_ChunkedEqualsWhole(t *testing.T) {
	whole := New(CargoLibtest, ci.Plain{}).Process([]byte(libtestStream))

	a := New(CargoLibtest, ci.Plain{})
	var chunked []string
	for _, part := range strings.SplitAfter(libtestStream, "e") {
		chunked = append(chunked, a.Process([]byte(part))...)
	}
	assert.Equal(t, whole, chunked)
	assert.Zero(t, a.Pending())
}

func TestProcess_LogsAndCountsMalformed(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	a := New(CargoCheck, ci.Plain{}, WithLogger(logger))
	out := a.Process([]byte(`{"reason":"build-finished"}` + "\n" + `{"reason":"build-finished","success":false}` + "\n"))

	assert.Equal(t, []string{"Build failed"}, out)
	assert.Equal(t, 1, a.Malformed())
	assert.Contains(t, buf.String(), "skipping malformed line")
	assert.Contains(t, buf.String(), "tool=cargo-check")
	assert.Contains(t, buf.String(), "line=1")
	assert.Contains(t, buf.String(), `missing field`)
}

func TestProcess_SkipsEmptyRenderings(t *testing.T) {
	line := `{"reason":"compiler-message","package_id":"p","manifest_path":"m","target":{"kind":[],"crate_types":[],"name":"n","src_path":"s","edition":"2021","doc":false,"doctest":false,"test":false},"message":{"$message_type":"unused_externs","lint_level":"warn","unused_names":[]}}`
	a := New(CargoCheck, ci.GitHub{})
	assert.Empty(t, a.Process([]byte(line+"\n")))
	assert.Zero(t, a.Malformed())
}
