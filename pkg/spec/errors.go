package spec

import "errors"

// ErrEmptyDescription is returned when an explicit description is set to an
// empty or whitespace-only string. This is a caller error, rejected at set
// time rather than silently falling back to the docstring or identifier.
// Use errors.Is(err, ErrEmptyDescription) to check for this condition.
var ErrEmptyDescription = errors.New("explicit description is empty")

// ErrInvalidNode is returned when the tree builder is asked to build a tree
// for a node with no identity. This is a programming-contract violation, not
// a runtime condition to recover from.
// Use errors.Is(err, ErrInvalidNode) to check for this condition.
var ErrInvalidNode = errors.New("node has no identity")
