package pipeline

import (
	"cmp"

	"github.com/gogpu/gputypes"
)

// Compare reports whether incoming passes fn against stored.
// An undefined function never passes.
func Compare[T cmp.Ordered](fn gputypes.CompareFunction, incoming, stored T) bool {
	switch fn {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionLess:
		return incoming < stored
	case gputypes.CompareFunctionEqual:
		return incoming == stored
	case gputypes.CompareFunctionLessEqual:
		return incoming <= stored
	case gputypes.CompareFunctionGreater:
		return incoming > stored
	case gputypes.CompareFunctionNotEqual:
		return incoming != stored
	case gputypes.CompareFunctionGreaterEqual:
		return incoming >= stored
	case gputypes.CompareFunctionAlways:
		return true
	}
	return false
}
