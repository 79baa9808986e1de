// Package nbt decodes uncompressed NBT (Named Binary Tag) documents
// into a comparison-ready tree without copying payload bytes.
//
// The decoder is deliberately shallow: primitive numerics, arrays,
// strings and lists of primitive numerics are kept as opaque byte
// spans aliasing the input buffer, never converted to typed values.
// This makes decoding a single linear pass and makes structural
// equality a byte comparison over spans.
//
// # Decoding
//
//	data, _ := os.ReadFile("level.dat") // already decompressed
//	root, err := nbt.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The returned tree borrows from data: it must not be used after data
// is released or mutated, and it holds no state beyond the call.
//
// # Errors
//
// Parse fails with one of four terminal errors, each wrapped in a
// *ParseError carrying the byte offset:
//
//	ErrInvalidRoot    first byte is not the Compound tag
//	ErrUnexpectedEOF  fewer bytes remain than a step requires
//	ErrUnknownTag     tag id outside the closed 0-12 set
//	ErrOverflow       declared array byte length is unaddressable
//
// # Equality
//
//	left.Equal(right)
//
// Compounds compare by key set, lists by position, spans by bytes.
// Values of different shapes are never equal.
package nbt
