package tool

import (
	"bytes"

	"github.com/dkoosis/cifmt/pkg/cargo"
	"github.com/dkoosis/cifmt/pkg/libtest"
)

// Detect reports whether a strict majority of the newline-terminated,
// non-blank lines in sample decode with decode. Blank and whitespace-only
// lines count neither for nor against the format, so blank padding between
// records cannot outvote them. The unterminated tail of sample is ignored.
// A sample with no such lines is not detected.
func Detect[M any](sample []byte, decode DecodeFunc[M]) bool {
	var ok, failed int
	for {
		i := bytes.IndexByte(sample, '\n')
		if i < 0 {
			break
		}
		line := sample[:i]
		sample = sample[i+1:]
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if _, err := decode(line); err == nil {
			ok++
		} else {
			failed++
		}
	}
	return ok > failed
}

// NewCargoCheck returns a Tool for cargo --message-format=json output.
func NewCargoCheck() *Tool[cargo.Message] {
	return New[cargo.Message](CargoCheck, cargo.Decode)
}

// NewCargoLibtest returns a Tool for libtest --format=json output.
func NewCargoLibtest() *Tool[libtest.Message] {
	return New[libtest.Message](CargoLibtest, libtest.Decode)
}

// DetectCargoCheck reports whether sample is cargo JSON output.
func DetectCargoCheck(sample []byte) bool {
	return Detect[cargo.Message](sample, cargo.Decode)
}

// DetectCargoLibtest reports whether sample is libtest JSON output.
func DetectCargoLibtest(sample []byte) bool {
	return Detect[libtest.Message](sample, libtest.Decode)
}
