// Package nbtcompare answers one question: are two serialized NBT
// documents structurally the same?
//
// Both inputs are decoded in a single zero-copy pass and compared as
// trees, optionally ignoring one named top-level field. No payload
// value is ever materialized; the result is a single boolean.
//
// # Layout
//
//	nbtcompare/      Root package with the Compare entry point
//	├── nbt/         NBT binary decoding and structural equality
//	└── cmd/nbtcmp/  CLI for comparing NBT files, with a TUI diff view
//
// # Quick Start
//
//	equal, err := nbtcompare.Compare(leftBytes, rightBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Ignore a volatile timestamp field:
//
//	equal, err := nbtcompare.CompareWithOptions(leftBytes, rightBytes,
//	    nbtcompare.CompareOptions{ExcludeField: "LastUpdate"})
//
// Inputs must already be decompressed; see cmd/nbtcmp for transparent
// gzip and zlib handling of on-disk files.
package nbtcompare
