package core

import "errors"

// Error taxonomy shared by every measurement package. Package-level
// sentinels wrap one of these so callers can classify failures with
// errors.Is without knowing the package that raised them.
var (
	// ErrInvalidParameter reports an argument outside its valid domain.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInsufficientData reports an input too short for the requested
	// analysis.
	ErrInsufficientData = errors.New("insufficient data")
)
