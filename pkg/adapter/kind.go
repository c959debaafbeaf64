package adapter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dkoosis/cifmt/pkg/tool"
)

// ErrNoToolDetected is returned by Detect when no tool format matches the
// sample.
var ErrNoToolDetected = errors.New("no tool format detected")

// Kind identifies a supported tool.
type Kind int

const (
	CargoCheck Kind = iota
	CargoLibtest
)

// detectors is the detection order. The first tool that claims a sample wins.
var detectors = []struct {
	kind   Kind
	detect func(sample []byte) bool
}{
	{CargoCheck, tool.DetectCargoCheck},
	{CargoLibtest, tool.DetectCargoLibtest},
}

// Kinds returns the supported tools in detection order.
func Kinds() []Kind {
	kinds := make([]Kind, len(detectors))
	for i, d := range detectors {
		kinds[i] = d.kind
	}
	return kinds
}

// String returns the tool name.
func (k Kind) String() string {
	switch k {
	case CargoCheck:
		return tool.CargoCheck
	case CargoLibtest:
		return tool.CargoLibtest
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a tool name to its Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case tool.CargoCheck:
		return CargoCheck, nil
	case tool.CargoLibtest:
		return CargoLibtest, nil
	default:
		names := make([]string, 0, len(detectors))
		for _, k := range Kinds() {
			names = append(names, k.String())
		}
		return 0, fmt.Errorf("unknown tool %q (want one of: %s)", name, strings.Join(names, ", "))
	}
}

// DetectKind returns the first tool whose format matches sample.
func DetectKind(sample []byte) (Kind, error) {
	for _, d := range detectors {
		if d.detect(sample) {
			return d.kind, nil
		}
	}
	return 0, ErrNoToolDetected
}
