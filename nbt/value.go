package nbt

import "bytes"

// Kind identifies the shape of a decoded Value.
type Kind uint8

const (
	KindSpan     Kind = iota // raw byte span borrowed from the input
	KindCompound             // name to value mapping
	KindList                 // ordered sequence of values
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSpan:
		return "span"
	case KindCompound:
		return "compound"
	case KindList:
		return "list"
	default:
		return "invalid"
	}
}

// Value is one decoded NBT value. Exactly one of Span, Compound or
// List is populated, selected by Kind.
//
// Spans are used for every primitive numeric tag, every primitive
// array tag, strings, and lists of primitive numeric elements. They
// alias the input buffer passed to Parse and must not outlive it.
// No numeric or string decoding is performed on span payloads;
// equality is byte-for-byte identity.
type Value struct {
	Span     []byte
	Compound map[string]Value
	List     []Value
	Kind     Kind
	Tag      byte
}

// Equal reports deep structural equality between two values.
//
// Spans are equal iff their bytes are identical. Compounds are equal
// iff they have the same key set and every shared key maps to equal
// values; member order never matters. Lists are equal iff they have
// the same length and every positional pair is equal; order matters.
// Values of different kinds are never equal.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindSpan:
		return bytes.Equal(v.Span, o.Span)
	case KindCompound:
		if len(v.Compound) != len(o.Compound) {
			return false
		}
		for name, lv := range v.Compound {
			rv, ok := o.Compound[name]
			if !ok || !lv.Equal(rv) {
				return false
			}
		}
		return true
	case KindList:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(o.List[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func spanValue(tag byte, span []byte) Value {
	return Value{Kind: KindSpan, Tag: tag, Span: span}
}
