package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dkoosis/cifmt/pkg/ci"
	"github.com/dkoosis/cifmt/pkg/libtest"
)

// Libtest renders a libtest event for p.
func Libtest(p ci.Platform, m libtest.Message) string {
	switch p := p.(type) {
	case ci.GitHub:
		return libtestGitHub(m)
	case ci.Plain:
		return libtestPlain(p, m)
	default:
		return ""
	}
}

func libtestPlain(p ci.Plain, m libtest.Message) string {
	switch m := m.(type) {
	case libtest.SuiteDiscovery:
		return line(p, ci.SeverityNotice, "SUITE:", " Test Discovery Started")
	case libtest.SuiteCompleted:
		return line(p, ci.SeverityNotice, "SUITE:", " Test Discovery Completed - "+discovered(m))
	case libtest.SuiteStarted:
		return line(p, ci.SeverityNotice, "SUITE:", fmt.Sprintf(" Test Suite Started - Running %d tests", m.TestCount))
	case libtest.SuiteOk:
		return line(p, ci.SeveritySuccess, "SUITE:", " Test Suite Passed - "+passedFirst(m.SuiteCounts))
	case libtest.SuiteFailed:
		return line(p, ci.SeverityError, "SUITE:", " Test Suite Failed - "+failedFirst(m.SuiteCounts))
	case libtest.TestDiscovered:
		return line(p, ci.SeverityMuted, "TEST DISCOVERED:", " "+testLocation(m))
	case libtest.TestStarted:
		return line(p, ci.SeverityMuted, "TEST STARTED:", " "+m.Name)
	case libtest.TestOk:
		s := line(p, ci.SeveritySuccess, "TEST OK:", " "+m.Name+seconds(m.ExecTime, " (executed in %s)"))
		if out := stdout(m.Stdout); out != "" {
			return out + "\n" + s
		}
		return s
	case libtest.TestFailed:
		s := line(p, ci.SeverityError, "TEST FAILED:", " "+m.Name+seconds(m.ExecTime, " (executed in %s)"))
		if m.Message != nil {
			s += " - " + *m.Message
		}
		s += "\n"
		if out := stdout(m.Stdout); out != "" {
			return out + "\n" + s
		}
		return s
	case libtest.TestTimeout:
		return line(p, ci.SeverityError, "TEST TIMEOUT:", " "+m.Name)
	case libtest.TestIgnored:
		s := line(p, ci.SeverityWarning, "TEST IGNORED:", " "+m.Name)
		if reason := ignoreReason(m.Message); reason != "" {
			s += " - " + reason
		}
		return s
	case libtest.Bench:
		return line(p, ci.SeverityNotice, "BENCH:", " "+bench(m))
	case libtest.Report:
		return line(p, ci.SeverityNotice, "REPORT:", " "+report(m))
	default:
		return ""
	}
}

func libtestGitHub(m libtest.Message) string {
	switch m := m.(type) {
	case libtest.SuiteDiscovery:
		return ci.Group("Test Discovery")
	case libtest.SuiteCompleted:
		return join(
			ci.EndGroup(),
			ci.Notice(discovered(m)).Title("Test Discovery").String(),
		)
	case libtest.SuiteStarted:
		return ci.Notice(fmt.Sprintf("Running %d tests", m.TestCount)).Title("Test Suite Started").String()
	case libtest.SuiteOk:
		return ci.Notice(passedFirst(m.SuiteCounts)).Title("Test Suite Passed").String()
	case libtest.SuiteFailed:
		return ci.Error(failedFirst(m.SuiteCounts)).Title("Test Suite Failed").String()
	case libtest.TestDiscovered:
		return ci.Debug("Discovered test: " + testLocation(m))
	case libtest.TestStarted:
		return ci.Group("Test: " + m.Name)
	case libtest.TestOk:
		return join(
			stdoutLine(m.Stdout),
			ci.Notice(seconds(m.ExecTime, "Executed in %s")).Title("Test Passed: "+m.Name).String(),
			ci.EndGroup(),
		)
	case libtest.TestFailed:
		var msg string
		if m.Message != nil {
			msg = *m.Message
		}
		return join(
			stdoutLine(m.Stdout),
			ci.EndGroup(),
			ci.Notice(msg).Title("Test Failed: "+m.Name+seconds(m.ExecTime, " (executed in %s)")).String(),
		)
	case libtest.TestTimeout:
		return join(
			ci.EndGroup(),
			ci.Error(m.Name).Title("Test Timeout").String(),
		)
	case libtest.TestIgnored:
		return ci.Notice(ignoreReason(m.Message)).Title("Test Ignored: " + m.Name).String()
	case libtest.Bench:
		return ci.Notice(bench(m)).Title("Benchmark Result").String()
	case libtest.Report:
		return ci.Notice(report(m)).Title("Doctest Report").String()
	default:
		return ""
	}
}

func discovered(m libtest.SuiteCompleted) string {
	return fmt.Sprintf("Discovered %d items: %d tests, %d benchmarks, %d ignored",
		m.Total, m.Tests, m.Benchmarks, m.Ignored)
}

func passedFirst(c libtest.SuiteCounts) string {
	return fmt.Sprintf("%d passed, %d failed, %d ignored, %d measured, %d filtered out",
		c.Passed, c.Failed, c.Ignored, c.Measured, c.FilteredOut) + seconds(c.ExecTime, " in %s")
}

func failedFirst(c libtest.SuiteCounts) string {
	return fmt.Sprintf("%d failed, %d passed, %d ignored, %d measured, %d filtered out",
		c.Failed, c.Passed, c.Ignored, c.Measured, c.FilteredOut) + seconds(c.ExecTime, " in %s")
}

func testLocation(m libtest.TestDiscovered) string {
	ignoreMessage := "None"
	if m.IgnoreMessage != nil {
		ignoreMessage = "Some(" + strconv.Quote(*m.IgnoreMessage) + ")"
	}
	return fmt.Sprintf("%s (ignored: %t, message: %s, location: %s:%d:%d-%d:%d)",
		m.Name, m.Ignore, ignoreMessage, m.SourcePath, m.StartLine, m.StartCol, m.EndLine, m.EndCol)
}

func stdout(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// stdoutLine is captured output terminated by a newline, or "".
func stdoutLine(s *string) string {
	if out := stdout(s); out != "" {
		return out + "\n"
	}
	return ""
}

func ignoreReason(s *string) string {
	if s == nil {
		return ""
	}
	return strings.ReplaceAll(*s, "\n", " ")
}

func bench(m libtest.Bench) string {
	s := fmt.Sprintf("%s: %d ns/iter (± %d)", m.Name, m.Median, m.Deviation)
	if m.MibPerSecond != nil {
		s += fmt.Sprintf(" (%d MiB/s)", *m.MibPerSecond)
	}
	return s
}

func report(m libtest.Report) string {
	return fmt.Sprintf("Total: %.2fs, Compilation: %.2fs", m.TotalTime, m.CompilationTime)
}
