// Package ci describes the CI platforms messages are rendered for and builds
// the GitHub Actions workflow commands used to annotate a run.
package ci

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Platform names accepted by Resolve.
const (
	NameAuto   = "auto"
	NameGitHub = "github"
	NamePlain  = "plain"
)

// ErrUnknownPlatform is returned by Resolve for an unrecognized name.
var ErrUnknownPlatform = errors.New("unknown platform")

// Platform is the output target. It is GitHub or Plain.
type Platform interface {
	Name() string
	platform()
}

// GitHub renders GitHub Actions workflow commands.
type GitHub struct{}

// Plain renders human-readable text. Styles is nil for byte-exact output.
type Plain struct {
	Styles *Styles
}

func (GitHub) Name() string { return NameGitHub }
func (Plain) Name() string  { return NamePlain }

func (GitHub) platform() {}
func (Plain) platform()  {}

// LookupFunc reads an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// FromEnv picks GitHub when GITHUB_ACTIONS is set to any value, Plain
// otherwise. A nil lookup reads the process environment.
func FromEnv(lookup LookupFunc) Platform {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if _, ok := lookup("GITHUB_ACTIONS"); ok {
		return GitHub{}
	}
	return Plain{}
}

// Resolve maps a configured platform name to a Platform. "auto" and ""
// defer to FromEnv.
func Resolve(name string, lookup LookupFunc) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameAuto:
		return FromEnv(lookup), nil
	case NameGitHub:
		return GitHub{}, nil
	case NamePlain:
		return Plain{}, nil
	default:
		return nil, fmt.Errorf("%w %q (want %s, %s or %s)", ErrUnknownPlatform, name, NameAuto, NameGitHub, NamePlain)
	}
}
