package layout

import "errors"

var (
	// ErrStructural is returned for tree-structure misuse: re-parenting a
	// node that already has a parent, or indexing children out of range.
	ErrStructural = errors.New("structural error")

	// ErrNotComputed is returned when layout results are queried from a
	// node that is dirty or has never been laid out.
	ErrNotComputed = errors.New("layout not computed")
)
