// Package magetasks implements the build, test and lint targets of the
// Magefile. Targets print section headers and pass tool output through.
package magetasks
