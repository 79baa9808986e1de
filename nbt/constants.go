package nbt

// Tag IDs define the binary identifiers for each NBT value type.
// The set is closed by the format specification; 0 is the End marker
// that terminates a compound and is never a value type of its own.
const (
	TagEnd       byte = 0  // Terminates a compound
	TagByte      byte = 1  // 1-byte integer
	TagShort     byte = 2  // 2-byte integer
	TagInt       byte = 3  // 4-byte integer
	TagLong      byte = 4  // 8-byte integer
	TagFloat     byte = 5  // 4-byte IEEE 754 float
	TagDouble    byte = 6  // 8-byte IEEE 754 float
	TagByteArray byte = 7  // u32 count + count bytes
	TagString    byte = 8  // u16 length + Modified UTF-8 bytes
	TagList      byte = 9  // element tag id + u32 count + elements
	TagCompound  byte = 10 // named members until an End tag
	TagIntArray  byte = 11 // u32 count + count*4 bytes
	TagLongArray byte = 12 // u32 count + count*8 bytes
)

// payloadSize maps the six primitive numeric tag IDs to their fixed
// payload width in bytes. Zero entries mark non-primitive tags.
var payloadSize = [13]int{
	TagByte:   1,
	TagShort:  2,
	TagInt:    4,
	TagLong:   8,
	TagFloat:  4,
	TagDouble: 8,
}

// TagName returns a human-readable name for a tag ID.
func TagName(id byte) string {
	switch id {
	case TagEnd:
		return "End"
	case TagByte:
		return "Byte"
	case TagShort:
		return "Short"
	case TagInt:
		return "Int"
	case TagLong:
		return "Long"
	case TagFloat:
		return "Float"
	case TagDouble:
		return "Double"
	case TagByteArray:
		return "ByteArray"
	case TagString:
		return "String"
	case TagList:
		return "List"
	case TagCompound:
		return "Compound"
	case TagIntArray:
		return "IntArray"
	case TagLongArray:
		return "LongArray"
	default:
		return "Unknown"
	}
}
