package render

import (
	"fmt"
	"strings"

	"github.com/dkoosis/cifmt/pkg/cargo"
	"github.com/dkoosis/cifmt/pkg/ci"
)

// Cargo renders a cargo record for p.
func Cargo(p ci.Platform, m cargo.Message) string {
	switch p := p.(type) {
	case ci.GitHub:
		return cargoGitHub(m)
	case ci.Plain:
		return cargoPlain(p, m)
	default:
		return ""
	}
}

func cargoPlain(p ci.Plain, m cargo.Message) string {
	switch m := m.(type) {
	case cargo.CompilerMessage:
		return rustcPlain(p, m.Message)
	case cargo.CompilerArtifact:
		s := line(p, ci.SeverityMuted, "Compiled:", " "+m.PackageID)
		if m.Fresh {
			s += " (fresh)"
		}
		return s
	case cargo.BuildScriptExecuted:
		return line(p, ci.SeverityMuted, "Build script executed:", " "+m.PackageID)
	case cargo.BuildFinished:
		if m.Success {
			return p.Paint(ci.SeveritySuccess, "Build finished successfully")
		}
		return p.Paint(ci.SeverityError, "Build failed")
	default:
		return ""
	}
}

func cargoGitHub(m cargo.Message) string {
	switch m := m.(type) {
	case cargo.CompilerMessage:
		return rustcGitHub(m.Message)
	case cargo.CompilerArtifact:
		s := "Compiled: " + m.PackageID
		if m.Fresh {
			s += " (fresh)"
		}
		return ci.Debug(s)
	case cargo.BuildScriptExecuted:
		return ci.Debug("Build script executed: " + m.PackageID)
	case cargo.BuildFinished:
		if m.Success {
			return ci.Notice("Build finished successfully").Title("Build Complete").String()
		}
		return ci.Error("Build failed").Title("Build Failed").String()
	default:
		return ""
	}
}

func rustcPlain(p ci.Plain, m cargo.RustcMessage) string {
	switch m := m.(type) {
	case cargo.Diagnostic:
		return diagnosticPlain(p, m)
	case cargo.Artifact:
		return line(p, ci.SeverityMuted, "Generated artifact:", fmt.Sprintf(" %s (%s)", m.Artifact, m.Emit))
	case cargo.FutureIncompat:
		if len(m.FutureIncompatReport) == 0 {
			return ""
		}
		var b strings.Builder
		b.WriteString(p.Paint(ci.SeverityWarning, "Future incompatibility warnings detected:"))
		b.WriteByte('\n')
		for _, e := range m.FutureIncompatReport {
			b.WriteString(diagnosticPlain(p, e.Diagnostic))
		}
		return b.String()
	case cargo.UnusedExterns:
		if len(m.UnusedNames) == 0 {
			return ""
		}
		msg := " Unused dependencies: " + strings.Join(m.UnusedNames, ", ")
		if denied(m.LintLevel) {
			return line(p, ci.SeverityError, "error:", msg)
		}
		return line(p, ci.SeverityWarning, "warning:", msg)
	case cargo.SectionTiming:
		return line(p, ci.SeverityMuted, "Compilation section", " "+sectionTiming(m))
	default:
		return ""
	}
}

func rustcGitHub(m cargo.RustcMessage) string {
	switch m := m.(type) {
	case cargo.Diagnostic:
		return diagnosticGitHub(m)
	case cargo.Artifact:
		return ci.Debug(fmt.Sprintf("Generated artifact: %s (%s)", m.Artifact, m.Emit))
	case cargo.FutureIncompat:
		if len(m.FutureIncompatReport) == 0 {
			return ""
		}
		var b strings.Builder
		b.WriteString(ci.Warning("Future incompatibility warnings detected").Title("Future Incompatibility Report").String())
		for _, e := range m.FutureIncompatReport {
			b.WriteString(diagnosticGitHub(e.Diagnostic))
		}
		return b.String()
	case cargo.UnusedExterns:
		if len(m.UnusedNames) == 0 {
			return ""
		}
		msg := "Unused dependencies: " + strings.Join(m.UnusedNames, ", ")
		if denied(m.LintLevel) {
			return ci.Error(msg).Title("Unused Dependencies").String()
		}
		return ci.Warning(msg).Title("Unused Dependencies").String()
	case cargo.SectionTiming:
		return ci.Debug("Compilation section " + sectionTiming(m))
	default:
		return ""
	}
}

func denied(lintLevel string) bool {
	return lintLevel == "deny" || lintLevel == "forbid"
}

// sectionTiming is the text after "Compilation section ".
func sectionTiming(m cargo.SectionTiming) string {
	return fmt.Sprintf("%s %s: %s (%dμs)", m.Name, m.Event, m.Name, m.Time)
}

func diagnosticPlain(p ci.Plain, d cargo.Diagnostic) string {
	var b strings.Builder
	switch d.Level {
	case cargo.LevelError, cargo.LevelInternalCompilerError:
		b.WriteString(line(p, ci.SeverityError, "error:", fmt.Sprintf(" %s (%s)\n", d.Message, d.Title())))
	case cargo.LevelWarning:
		b.WriteString(line(p, ci.SeverityWarning, "warning:", fmt.Sprintf(" %s (%s)\n", d.Message, d.Title())))
	default:
		b.WriteString(line(p, ci.SeverityNotice, d.Level.String()+":", " "+d.Message+"\n"))
	}
	for _, child := range d.Children {
		b.WriteString(diagnosticPlain(p, child))
	}
	return b.String()
}

func diagnosticGitHub(d cargo.Diagnostic) string {
	span := d.PrimarySpan()

	var a *ci.Annotation
	switch d.Level {
	case cargo.LevelError, cargo.LevelInternalCompilerError:
		a = ci.Error(d.Message).Title(d.Title())
	case cargo.LevelWarning:
		a = ci.Warning(d.Message).Title(d.Title())
	default:
		a = ci.Notice(d.Message).Title(d.Level.String())
		if span != nil {
			a.File(span.FileName).Line(span.LineStart).Col(span.ColumnStart)
		}
		span = nil
	}
	if span != nil {
		a.File(span.FileName).
			Line(span.LineStart).
			Col(span.ColumnStart).
			EndLine(span.LineEnd).
			EndColumn(span.ColumnEnd)
	}

	var b strings.Builder
	b.WriteString(a.String())
	for _, child := range d.Children {
		b.WriteString(diagnosticGitHub(child))
	}
	return b.String()
}
