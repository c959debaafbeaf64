/*
Package adapter binds one tool parser to one CI platform and turns raw tool
output into ready-to-print annotations.

An [Adapter] is created either explicitly with [New], when the caller knows
which tool produced the stream, or with [Detect], which tries each supported
tool against a sample of the stream in the order returned by [Kinds]. The
sample is only inspected; callers pass it through [Adapter.Process] like any
other chunk.

# Usage

	a, err := adapter.Detect(sample, ci.FromEnv(nil))
	if err != nil {
	        return err // adapter.ErrNoToolDetected
	}
	for _, s := range a.Process(sample) {
	        fmt.Print(s)
	}

# API Safety

An Adapter is not safe for concurrent use. Lines that fail to parse are never
rendered; they are logged at warn level and counted by [Adapter.Malformed].
*/
package adapter
