package catalog

import (
	"unsafe"

	"github.com/chrissimpkins/pyembed/errs"
)

const maxInt = int(^uint(0) >> 1)

// unsafeString reinterprets b as a string without copying. b aliases the
// decoder's input buffer and is never mutated after load, which makes the
// aliasing safe.
func unsafeString(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	return unsafe.String(unsafe.SliceData(b), len(b))
}

// lengthToInt narrows a wire u64 length to int, failing instead of wrapping
// on 32-bit platforms.
func lengthToInt(v uint64) (int, error) {
	if v > uint64(maxInt) {
		return 0, errs.ErrLengthOverflow
	}

	return int(v), nil
}
