package nbt_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/wippyai/nbt-compare/nbt"
)

// Fixture builders. Documents are assembled by hand so tests state the
// exact wire bytes they exercise.

func be16(v int) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(v))
	return b[:]
}

func be32(v int) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	return b[:]
}

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// member encodes one named compound member: tag, name length, name, payload.
func member(tag byte, name string, payload []byte) []byte {
	return cat([]byte{tag}, be16(len(name)), []byte(name), payload)
}

// doc wraps members in a root compound with an empty root name.
func doc(members ...[]byte) []byte {
	out := []byte{nbt.TagCompound, 0x00, 0x00}
	for _, m := range members {
		out = append(out, m...)
	}
	return append(out, nbt.TagEnd)
}

func TestParseMinimalDocument(t *testing.T) {
	data := []byte{0x0A, 0x00, 0x00, 0x00}
	root, err := nbt.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Kind != nbt.KindCompound {
		t.Fatalf("expected compound root, got %v", root.Kind)
	}
	if len(root.Compound) != 0 {
		t.Errorf("expected empty root, got %d members", len(root.Compound))
	}
}

func TestParseInvalidRoot(t *testing.T) {
	data := []byte{nbt.TagByte, 0x00, 0x00, 0x01, 0x00}
	_, err := nbt.Parse(data)
	if !errors.Is(err, nbt.ErrInvalidRoot) {
		t.Errorf("expected ErrInvalidRoot, got %v", err)
	}
}

func TestParseEmptyInput(t *testing.T) {
	_, err := nbt.Parse(nil)
	if !errors.Is(err, nbt.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestParseRootNameSkipped(t *testing.T) {
	data := cat([]byte{nbt.TagCompound}, be16(4), []byte("root"),
		member(nbt.TagByte, "B", []byte{0x7F}),
		[]byte{nbt.TagEnd})
	root, err := nbt.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := root.Compound["B"]; !ok {
		t.Error("expected member B under named root")
	}
	if _, ok := root.Compound["root"]; ok {
		t.Error("root name must not become a member")
	}
}

func TestParsePrimitiveWidths(t *testing.T) {
	tests := []struct {
		name  string
		tag   byte
		width int
	}{
		{"Byte", nbt.TagByte, 1},
		{"Short", nbt.TagShort, 2},
		{"Int", nbt.TagInt, 4},
		{"Long", nbt.TagLong, 8},
		{"Float", nbt.TagFloat, 4},
		{"Double", nbt.TagDouble, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := make([]byte, tt.width)
			for i := range payload {
				payload[i] = byte(i + 1)
			}
			root, err := nbt.Parse(doc(member(tt.tag, "v", payload)))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			v := root.Compound["v"]
			if v.Kind != nbt.KindSpan {
				t.Fatalf("expected span, got %v", v.Kind)
			}
			if len(v.Span) != tt.width {
				t.Errorf("expected %d payload bytes, got %d", tt.width, len(v.Span))
			}
		})
	}
}

func TestParseSpansAliasInput(t *testing.T) {
	data := doc(member(nbt.TagInt, "n", []byte{0xDE, 0xAD, 0xBE, 0xEF}))
	root, err := nbt.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	span := root.Compound["n"].Span
	if len(span) != 4 {
		t.Fatalf("expected 4-byte span, got %d", len(span))
	}
	// The span must be a window into data, not a copy. The last
	// payload byte of "n" sits just before the closing End tag.
	data[len(data)-2] = 0x00
	if span[3] != 0x00 {
		t.Error("span does not alias the input buffer")
	}
}

func TestParseString(t *testing.T) {
	root, err := nbt.Parse(doc(member(nbt.TagString, "s",
		cat(be16(5), []byte("hello")))))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := string(root.Compound["s"].Span); got != "hello" {
		t.Errorf("expected %q, got %q", "hello", got)
	}
}

func TestParseArrays(t *testing.T) {
	tests := []struct {
		name  string
		tag   byte
		width int
	}{
		{"ByteArray", nbt.TagByteArray, 1},
		{"IntArray", nbt.TagIntArray, 4},
		{"LongArray", nbt.TagLongArray, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const count = 3
			payload := make([]byte, count*tt.width)
			root, err := nbt.Parse(doc(member(tt.tag, "a",
				cat(be32(count), payload))))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			v := root.Compound["a"]
			if v.Kind != nbt.KindSpan {
				t.Fatalf("expected span, got %v", v.Kind)
			}
			if len(v.Span) != count*tt.width {
				t.Errorf("expected %d bytes, got %d", count*tt.width, len(v.Span))
			}
		})
	}
}

func TestParsePrimitiveListIsBulkSpan(t *testing.T) {
	// List of 3 Ints decodes as one 12-byte span.
	root, err := nbt.Parse(doc(member(nbt.TagList, "l",
		cat([]byte{nbt.TagInt}, be32(3), be32(1), be32(2), be32(3)))))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v := root.Compound["l"]
	if v.Kind != nbt.KindSpan {
		t.Fatalf("expected bulk span, got %v", v.Kind)
	}
	if len(v.Span) != 12 {
		t.Errorf("expected 12 bytes, got %d", len(v.Span))
	}
}

func TestParseStringList(t *testing.T) {
	root, err := nbt.Parse(doc(member(nbt.TagList, "l",
		cat([]byte{nbt.TagString}, be32(2),
			be16(2), []byte("ab"),
			be16(1), []byte("c")))))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v := root.Compound["l"]
	if v.Kind != nbt.KindList {
		t.Fatalf("expected list, got %v", v.Kind)
	}
	if len(v.List) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(v.List))
	}
	if string(v.List[0].Span) != "ab" || string(v.List[1].Span) != "c" {
		t.Errorf("unexpected elements: %q, %q", v.List[0].Span, v.List[1].Span)
	}
}

func TestParseCompoundList(t *testing.T) {
	inner := cat(member(nbt.TagByte, "x", []byte{1}), []byte{nbt.TagEnd})
	root, err := nbt.Parse(doc(member(nbt.TagList, "l",
		cat([]byte{nbt.TagCompound}, be32(2), inner, inner))))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v := root.Compound["l"]
	if len(v.List) != 2 {
		t.Fatalf("expected 2 compounds, got %d", len(v.List))
	}
	for i, e := range v.List {
		if e.Kind != nbt.KindCompound {
			t.Errorf("element %d: expected compound, got %v", i, e.Kind)
		}
	}
}

func TestParseNestedCompound(t *testing.T) {
	inner := cat(member(nbt.TagLong, "ticks", make([]byte, 8)), []byte{nbt.TagEnd})
	root, err := nbt.Parse(doc(member(nbt.TagCompound, "Data", inner)))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	data, ok := root.Compound["Data"]
	if !ok || data.Kind != nbt.KindCompound {
		t.Fatalf("expected nested compound, got %+v", data)
	}
	if _, ok := data.Compound["ticks"]; !ok {
		t.Error("expected ticks member in nested compound")
	}
}

func TestParseEmptyListsCompareEqualAcrossElementTypes(t *testing.T) {
	// Empty lists are commonly written with an End element type; the
	// declared element type carries no weight at count zero.
	elemTypes := []byte{nbt.TagEnd, nbt.TagInt, nbt.TagCompound, nbt.TagString}
	values := make([]nbt.Value, len(elemTypes))
	for i, elem := range elemTypes {
		root, err := nbt.Parse(doc(member(nbt.TagList, "l",
			cat([]byte{elem}, be32(0)))))
		if err != nil {
			t.Fatalf("Parse (elem=%d): %v", elem, err)
		}
		values[i] = root.Compound["l"]
		if values[i].Kind != nbt.KindList || len(values[i].List) != 0 {
			t.Fatalf("elem=%d: expected empty list, got %+v", elem, values[i])
		}
	}
	for i := 1; i < len(values); i++ {
		if !values[0].Equal(values[i]) {
			t.Errorf("empty lists with element types %d and %d compare unequal",
				elemTypes[0], elemTypes[i])
		}
	}
}

func TestParseNonEmptyEndList(t *testing.T) {
	_, err := nbt.Parse(doc(member(nbt.TagList, "l",
		cat([]byte{nbt.TagEnd}, be32(1)))))
	if !errors.Is(err, nbt.ErrUnknownTag) {
		t.Errorf("expected ErrUnknownTag for non-empty End list, got %v", err)
	}
}

func TestParseUnknownTag(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"compound member", doc(member(13, "x", nil))},
		{"list element type", doc(member(nbt.TagList, "l", cat([]byte{13}, be32(1))))},
		{"empty list element type", doc(member(nbt.TagList, "l", cat([]byte{0xFF}, be32(0))))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := nbt.Parse(tt.data)
			if !errors.Is(err, nbt.ErrUnknownTag) {
				t.Errorf("expected ErrUnknownTag, got %v", err)
			}
		})
	}
}

func TestParseDuplicateMemberLastWins(t *testing.T) {
	root, err := nbt.Parse(doc(
		member(nbt.TagByte, "A", []byte{1}),
		member(nbt.TagByte, "A", []byte{2}),
	))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(root.Compound) != 1 {
		t.Fatalf("expected 1 member, got %d", len(root.Compound))
	}
	if got := root.Compound["A"].Span[0]; got != 2 {
		t.Errorf("expected later occurrence to win, got %d", got)
	}
}

func TestParseOversizedListCount(t *testing.T) {
	// A corrupt count is not validated up front; it must surface as
	// EOF while consuming elements, never as a wrong result.
	data := doc(member(nbt.TagList, "l",
		cat([]byte{nbt.TagInt}, be32(1<<20), be32(1))))
	_, err := nbt.Parse(data)
	if !errors.Is(err, nbt.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestParseTruncationAlwaysEOF(t *testing.T) {
	full := doc(
		member(nbt.TagByte, "b", []byte{1}),
		member(nbt.TagString, "s", cat(be16(3), []byte("abc"))),
		member(nbt.TagIntArray, "a", cat(be32(2), be32(7), be32(8))),
		member(nbt.TagList, "l", cat([]byte{nbt.TagShort}, be32(2), be16(1), be16(2))),
		member(nbt.TagList, "cl", cat([]byte{nbt.TagCompound}, be32(1),
			member(nbt.TagDouble, "d", make([]byte, 8)), []byte{nbt.TagEnd})),
		member(nbt.TagCompound, "c", cat(
			member(nbt.TagLong, "LastUpdate", make([]byte, 8)), []byte{nbt.TagEnd})),
	)
	if _, err := nbt.Parse(full); err != nil {
		t.Fatalf("fixture must parse: %v", err)
	}
	for n := 0; n < len(full); n++ {
		if _, err := nbt.Parse(full[:n]); !errors.Is(err, nbt.ErrUnexpectedEOF) {
			t.Fatalf("truncated to %d bytes: expected ErrUnexpectedEOF, got %v", n, err)
		}
	}
}

func TestParseTrailingBytesIgnored(t *testing.T) {
	data := cat(doc(member(nbt.TagByte, "b", []byte{1})), []byte{0xDE, 0xAD})
	root, err := nbt.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(root.Compound) != 1 {
		t.Errorf("expected 1 member, got %d", len(root.Compound))
	}
}

func TestParseErrorCarriesOffset(t *testing.T) {
	data := doc(member(13, "x", nil))
	_, err := nbt.Parse(data)
	var pe *nbt.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Offset == 0 {
		t.Error("expected a nonzero failure offset")
	}
}
