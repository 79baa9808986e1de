package nbt

import (
	"math"
	"math/bits"

	"go.uber.org/zap"

	"github.com/wippyai/nbt-compare/nbt/internal/cursor"
)

// Parse decodes one complete, uncompressed NBT document.
//
// The document must start with a Compound tag; its root name is read
// and discarded. The returned Value is the root compound. Every span
// in the returned tree aliases data, so the tree must not be used
// after data is released or mutated.
func Parse(data []byte) (Value, error) {
	c := cursor.New(data)

	tag, err := c.ReadU8()
	if err != nil {
		return Value{}, wrap(c, "document envelope", err)
	}
	if tag != TagCompound {
		return Value{}, wrap(c, "document envelope", ErrInvalidRoot)
	}

	// The root name is unused but must be present in full.
	nameLen, err := c.ReadU16()
	if err != nil {
		return Value{}, wrap(c, "root name length", err)
	}
	if _, err := c.Take(int(nameLen)); err != nil {
		return Value{}, wrap(c, "root name", err)
	}

	root, err := decodeCompound(c)
	if err != nil {
		return Value{}, err
	}

	Logger().Debug("decoded nbt document",
		zap.Int("size", len(data)),
		zap.Int("root_members", len(root.Compound)),
		zap.Int("trailing_bytes", c.Remaining()))
	return root, nil
}

// decodeValue decodes one value of a known non-End tag ID. Dispatch is
// a direct switch: the NBT tag set is closed and not extensible.
func decodeValue(c *cursor.Cursor, tag byte) (Value, error) {
	switch tag {
	case TagByte, TagShort, TagInt, TagLong, TagFloat, TagDouble:
		span, err := c.Take(payloadSize[tag])
		if err != nil {
			return Value{}, wrap(c, TagName(tag)+" payload", err)
		}
		return spanValue(tag, span), nil
	case TagByteArray:
		return decodeArray(c, tag, 1)
	case TagString:
		return decodeString(c)
	case TagList:
		return decodeList(c)
	case TagCompound:
		return decodeCompound(c)
	case TagIntArray:
		return decodeArray(c, tag, 4)
	case TagLongArray:
		return decodeArray(c, tag, 8)
	default:
		return Value{}, wrap(c, "tag dispatch", ErrUnknownTag)
	}
}

// decodeArray consumes a u32-prefixed run of fixed-width elements as
// a single span; no per-element decoding takes place.
func decodeArray(c *cursor.Cursor, tag byte, width int) (Value, error) {
	count, err := c.ReadU32()
	if err != nil {
		return Value{}, wrap(c, TagName(tag)+" length", err)
	}
	size, err := spanSize(count, width)
	if err != nil {
		return Value{}, wrap(c, TagName(tag)+" length", err)
	}
	span, err := c.Take(size)
	if err != nil {
		return Value{}, wrap(c, TagName(tag)+" payload", err)
	}
	return spanValue(tag, span), nil
}

// decodeString consumes a u16-prefixed string payload. The content is
// Modified UTF-8 but is treated as opaque bytes here.
func decodeString(c *cursor.Cursor) (Value, error) {
	length, err := c.ReadU16()
	if err != nil {
		return Value{}, wrap(c, "String length", err)
	}
	span, err := c.Take(int(length))
	if err != nil {
		return Value{}, wrap(c, "String payload", err)
	}
	return spanValue(TagString, span), nil
}

// decodeList decodes a homogeneous list. Lists of primitive numeric
// elements collapse into one bulk span, avoiding a decode call per
// element. The declared count is never validated against the
// remaining buffer up front; an oversized count surfaces as
// ErrUnexpectedEOF while elements are consumed.
func decodeList(c *cursor.Cursor) (Value, error) {
	elem, err := c.ReadU8()
	if err != nil {
		return Value{}, wrap(c, "List element type", err)
	}
	count, err := c.ReadU32()
	if err != nil {
		return Value{}, wrap(c, "List length", err)
	}

	// Empty lists are commonly written with an End element type. They
	// decode to an empty sequence whatever the element type declares,
	// so empty lists compare equal across declared element types.
	if count == 0 {
		if elem > TagLongArray {
			return Value{}, wrap(c, "List element type", ErrUnknownTag)
		}
		return Value{Kind: KindList, Tag: TagList}, nil
	}

	if width := listElemSize(elem); width > 0 {
		size, err := spanSize(count, width)
		if err != nil {
			return Value{}, wrap(c, "List length", err)
		}
		span, err := c.Take(size)
		if err != nil {
			return Value{}, wrap(c, "List payload", err)
		}
		return spanValue(TagList, span), nil
	}

	// End is not a decodable element type; a non-empty End-typed list
	// is malformed.
	if elem == TagEnd || elem > TagLongArray {
		return Value{}, wrap(c, "List element type", ErrUnknownTag)
	}

	list := make([]Value, 0, count)
	for i := uint32(0); i < count; i++ {
		v, err := decodeValue(c, elem)
		if err != nil {
			return Value{}, err
		}
		list = append(list, v)
	}
	return Value{Kind: KindList, Tag: TagList, List: list}, nil
}

// decodeCompound decodes named members until an End tag. A member name
// repeated within one compound overwrites the earlier entry.
func decodeCompound(c *cursor.Cursor) (Value, error) {
	members := make(map[string]Value)
	for {
		tag, err := c.ReadU8()
		if err != nil {
			return Value{}, wrap(c, "member tag", err)
		}
		if tag == TagEnd {
			return Value{Kind: KindCompound, Tag: TagCompound, Compound: members}, nil
		}
		if tag > TagLongArray {
			return Value{}, wrap(c, "member tag", ErrUnknownTag)
		}

		nameLen, err := c.ReadU16()
		if err != nil {
			return Value{}, wrap(c, "member name length", err)
		}
		name, err := c.Take(int(nameLen))
		if err != nil {
			return Value{}, wrap(c, "member name", err)
		}

		v, err := decodeValue(c, tag)
		if err != nil {
			return Value{}, err
		}
		members[string(name)] = v
	}
}

// listElemSize returns the bulk element width for primitive numeric
// list element types, or 0 when elements must be decoded one by one.
func listElemSize(elem byte) int {
	if elem >= TagByte && elem <= TagDouble {
		return payloadSize[elem]
	}
	return 0
}

// spanSize computes count*width, failing with ErrOverflow instead of
// wrapping when the product exceeds the addressable size.
func spanSize(count uint32, width int) (int, error) {
	hi, lo := bits.Mul64(uint64(count), uint64(width))
	if hi != 0 || lo > uint64(math.MaxInt) {
		return 0, ErrOverflow
	}
	return int(lo), nil
}

func wrap(c *cursor.Cursor, context string, err error) error {
	return &ParseError{Err: err, Context: context, Offset: c.Position()}
}
