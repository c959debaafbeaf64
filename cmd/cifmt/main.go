// cifmt turns the JSON messages of Rust build and test tools into CI
// annotations or readable terminal lines.
//
// Usage:
//
//	cargo check --message-format=json | cifmt format cargo-check
//	cargo test -- -Z unstable-options --format=json | cifmt format --detect
//	cargo build --message-format=json | cifmt detect
//
// Output targets (auto-detected from the environment):
//
//	github: GitHub Actions workflow commands (when GITHUB_ACTIONS is set)
//	plain:  one readable line per message, coloured on a terminal
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"golang.org/x/term"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks a failure caused by how the command was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	// Close stdin on cancel so a blocked read returns.
	if c, ok := stdin.(io.Closer); ok {
		stopClose := context.AfterFunc(ctx, func() { _ = c.Close() })
		defer stopClose()
	}

	root := newRootCmd(&app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		lookup: os.LookupEnv,
	})
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "cifmt: %v\n", err)
		var ue usageError
		if errors.As(err, &ue) {
			return exitUsage
		}
		return exitError
	}
	return exitOK
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
