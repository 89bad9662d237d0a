// Package endian provides byte order utilities for binary encoding and decoding.
//
// It combines the ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single EndianEngine interface so encoders can both read fixed-width
// integers and append them without an intermediate buffer.
//
// The packed-resources wire format is little-endian by definition, so
// GetLittleEndianEngine is the only engine the format packages use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
//
// The interface is satisfied by binary.LittleEndian and binary.BigEndian,
// making it fully compatible with existing Go code.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used by the
// packed-resources format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
