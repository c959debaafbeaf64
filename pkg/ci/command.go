package ci

import (
	"strconv"
	"strings"
)

// Annotation builds an error, warning or notice workflow command. Unset
// fields are left out of the parameter list.
type Annotation struct {
	cmd     string
	message string
	params  [6]string
}

const (
	paramFile = iota
	paramLine
	paramCol
	paramEndLine
	paramEndColumn
	paramTitle
)

var paramNames = [...]string{
	paramFile:      "file",
	paramLine:      "line",
	paramCol:       "col",
	paramEndLine:   "endLine",
	paramEndColumn: "endColumn",
	paramTitle:     "title",
}

// Error starts an ::error annotation.
func Error(message string) *Annotation { return &Annotation{cmd: "error", message: message} }

// Warning starts a ::warning annotation.
func Warning(message string) *Annotation { return &Annotation{cmd: "warning", message: message} }

// Notice starts a ::notice annotation.
func Notice(message string) *Annotation { return &Annotation{cmd: "notice", message: message} }

func (a *Annotation) set(i int, v string) *Annotation {
	a.params[i] = v
	return a
}

// File sets the source file.
func (a *Annotation) File(path string) *Annotation { return a.set(paramFile, path) }

// Line sets the start line.
func (a *Annotation) Line(n int) *Annotation { return a.set(paramLine, strconv.Itoa(n)) }

// Col sets the start column.
func (a *Annotation) Col(n int) *Annotation { return a.set(paramCol, strconv.Itoa(n)) }

// EndLine sets the end line.
func (a *Annotation) EndLine(n int) *Annotation { return a.set(paramEndLine, strconv.Itoa(n)) }

// EndColumn sets the end column.
func (a *Annotation) EndColumn(n int) *Annotation { return a.set(paramEndColumn, strconv.Itoa(n)) }

// Title sets the annotation title.
func (a *Annotation) Title(title string) *Annotation { return a.set(paramTitle, title) }

// String renders "::cmd params::message\n". Values are written as given.
func (a *Annotation) String() string {
	var b strings.Builder
	b.WriteString("::")
	b.WriteString(a.cmd)
	b.WriteByte(' ')
	first := true
	for i, v := range a.params {
		if v == "" {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(paramNames[i])
		b.WriteByte('=')
		b.WriteString(v)
	}
	b.WriteString("::")
	b.WriteString(a.message)
	b.WriteByte('\n')
	return b.String()
}

func command(cmd, value string) string {
	return "::" + cmd + "::" + value + "\n"
}

// Debug prints message only when step debug logging is enabled.
func Debug(message string) string { return command("debug", message) }

// Group opens a collapsible log group.
func Group(title string) string { return command("group", title) }

// EndGroup closes the innermost log group.
func EndGroup() string { return command("endgroup", "") }

// AddMask hides value in subsequent log output.
func AddMask(value string) string { return command("add-mask", value) }

// StopCommands suspends command processing until ResumeCommands(token).
func StopCommands(token string) string { return command("stop-commands", token) }

// ResumeCommands re-enables command processing.
func ResumeCommands(token string) string { return command(token, "") }

// Echo turns echoing of workflow commands on or off.
func Echo(on bool) string {
	if on {
		return command("echo", "on")
	}
	return command("echo", "off")
}
