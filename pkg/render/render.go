// Package render turns typed tool messages into the text a CI platform
// understands: plain lines for a log, or GitHub Actions workflow commands.
//
// Rendering is a pure function of the message and the platform. It never
// fails; a message with nothing to report renders as "".
package render

import (
	"fmt"
	"strings"

	"github.com/dkoosis/cifmt/pkg/ci"
)

// seconds formats an optional duration as format applied to "X.XXs", or ""
// when the duration is absent.
func seconds(t *float64, format string) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf(format, fmt.Sprintf("%.2fs", *t))
}

// line joins a painted prefix and the rest of a plain line.
func line(p ci.Plain, sev ci.Severity, prefix, rest string) string {
	return p.Paint(sev, prefix) + rest
}

func join(parts ...string) string {
	return strings.Join(parts, "")
}
