package adapter

import (
	"errors"
	"log/slog"

	"github.com/dkoosis/cifmt/pkg/cargo"
	"github.com/dkoosis/cifmt/pkg/ci"
	"github.com/dkoosis/cifmt/pkg/libtest"
	"github.com/dkoosis/cifmt/pkg/render"
	"github.com/dkoosis/cifmt/pkg/tool"
)

// Adapter feeds one tool's output through its parser and renders every
// message for a fixed platform. Exactly one of cargo and libtest is set,
// matching kind.
type Adapter struct {
	kind      Kind
	platform  ci.Platform
	logger    *slog.Logger
	cargo     *tool.Tool[cargo.Message]
	libtest   *tool.Tool[libtest.Message]
	malformed int
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger parse errors are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// New returns an Adapter for kind rendering for platform.
func New(kind Kind, platform ci.Platform, opts ...Option) *Adapter {
	a := &Adapter{
		kind:     kind,
		platform: platform,
		logger:   slog.Default(),
	}
	switch kind {
	case CargoLibtest:
		a.libtest = tool.NewCargoLibtest()
	default:
		a.kind = CargoCheck
		a.cargo = tool.NewCargoCheck()
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Detect picks the tool from sample and returns an Adapter for it. The
// sample is not consumed.
func Detect(sample []byte, platform ci.Platform, opts ...Option) (*Adapter, error) {
	kind, err := DetectKind(sample)
	if err != nil {
		return nil, err
	}
	return New(kind, platform, opts...), nil
}

// Name returns the tool name.
func (a *Adapter) Name() string { return a.kind.String() }

// Kind returns the bound tool.
func (a *Adapter) Kind() Kind { return a.kind }

// Platform returns the platform messages are rendered for.
func (a *Adapter) Platform() ci.Platform { return a.platform }

// Malformed returns how many lines failed to parse so far.
func (a *Adapter) Malformed() int { return a.malformed }

// Pending reports how many bytes of an unterminated line are buffered.
func (a *Adapter) Pending() int {
	if a.libtest != nil {
		return a.libtest.Pending()
	}
	return a.cargo.Pending()
}

// Process feeds p to the parser and returns the rendering of every message
// it completes, in order. Empty renderings are omitted.
func (a *Adapter) Process(p []byte) []string {
	if a.libtest != nil {
		return process(a, a.libtest.Feed(p), render.Libtest)
	}
	return process(a, a.cargo.Feed(p), render.Cargo)
}

func process[M any](a *Adapter, results []tool.Result[M], renderFn func(ci.Platform, M) string) []string {
	var out []string
	for _, r := range results {
		if r.Err != nil {
			a.malformed++
			var pe *tool.ParseError
			if errors.As(r.Err, &pe) {
				a.logger.Warn("skipping malformed line", "tool", pe.Tool, "line", pe.Line, "error", pe.Err)
			} else {
				a.logger.Warn("skipping malformed line", "tool", a.Name(), "error", r.Err)
			}
			continue
		}
		if s := renderFn(a.platform, r.Message); s != "" {
			out = append(out, s)
		}
	}
	return out
}
