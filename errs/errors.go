// Package errs defines the sentinel errors shared across the pyembed packages.
//
// Call sites wrap these with fmt.Errorf("%w: ...") to add context; tests and
// callers match them with errors.Is.
package errs

import "errors"

// Header errors.
var (
	ErrShortHeader        = errors.New("error reading 8 byte header")
	ErrUnrecognizedFormat = errors.New("unrecognized file format")
	ErrShortHeaderFields  = errors.New("failed reading resources header fields")
)

// Blob-section index errors.
var (
	ErrUnexpectedBlobIndexEnd = errors.New("unexpected end of blob index")
	ErrBlobIndexTerminator    = errors.New("unexpected value at end of blob index")
	ErrUnhandledBlobField     = errors.New("unhandled field in blob length index")
	ErrLengthOverflow         = errors.New("blob length overflow")
)

// Per-entry index errors.
var (
	ErrShortFieldRead   = errors.New("short read in resources index")
	ErrInvalidFieldType = errors.New("invalid field type")
	ErrNameRequired     = errors.New("resource name field is required")
	ErrCountMismatch    = errors.New("mismatch between advertised index count and actual")
	ErrBlobOutOfRange   = errors.New("resource blob out of range")
	ErrInvalidName      = errors.New("invalid UTF-8 in resource name")
)

// Runtime-table errors.
var ErrInvalidTableName = errors.New("invalid UTF-8 in module table name")

// Container errors.
var (
	ErrInvalidContainer       = errors.New("invalid container frame")
	ErrDigestMismatch         = errors.New("container digest mismatch")
	ErrUnsupportedCompression = errors.New("unsupported compression type")
)
