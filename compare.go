package nbtcompare

import (
	"fmt"

	"github.com/wippyai/nbt-compare/nbt"
)

// CompareOptions configures how two documents are compared.
type CompareOptions struct {
	// ExcludeField names a top-level compound member that is removed
	// from both sides before comparison. Useful for ignoring a
	// volatile timestamp such as "LastUpdate". Absence of the field
	// on either side is not an error. Empty means exclude nothing.
	ExcludeField string
}

// SideError reports which input failed to decode. It preserves the
// underlying error kind through Unwrap.
type SideError struct {
	Side string // "left" or "right"
	Err  error
}

func (e *SideError) Error() string {
	return fmt.Sprintf("%s input: %v", e.Side, e.Err)
}

func (e *SideError) Unwrap() error {
	return e.Err
}

// Compare reports whether two uncompressed NBT documents are
// structurally equal.
func Compare(left, right []byte) (bool, error) {
	return CompareWithOptions(left, right, CompareOptions{})
}

// CompareWithOptions decodes both documents and performs deep
// structural equality under the given options.
//
// Both sides must decode completely before comparison begins; a
// failing side aborts with a *SideError naming it. Neither input is
// retained after the call returns.
func CompareWithOptions(left, right []byte, opts CompareOptions) (bool, error) {
	lv, err := nbt.Parse(left)
	if err != nil {
		return false, &SideError{Side: "left", Err: err}
	}
	rv, err := nbt.Parse(right)
	if err != nil {
		return false, &SideError{Side: "right", Err: err}
	}

	if opts.ExcludeField != "" {
		delete(lv.Compound, opts.ExcludeField)
		delete(rv.Compound, opts.ExcludeField)
	}

	return lv.Equal(rv), nil
}
