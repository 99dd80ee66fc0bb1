package window

import (
	"errors"
	"fmt"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
)

var (
	ErrEmptyCoeffs      = errors.New("window: coefficients must not be empty")
	ErrZeroCoherentGain = errors.New("window: coherent gain is zero")
	ErrMismatchedLength = errors.New("window: samples and coefficients must have same length")
	ErrUnknownType      = fmt.Errorf("window: unknown type: %w", core.ErrInvalidParameter)
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window: size must be > 0: %d: %w", size, core.ErrInvalidParameter)
	}

	return nil
}

func validateTukey(size int, alpha float64) error {
	if size <= 0 {
		return validateLength(size)
	}

	if alpha < 0 || alpha > 1 {
		return fmt.Errorf("window: tukey alpha must be in [0,1]: %f: %w", alpha, core.ErrInvalidParameter)
	}

	return nil
}
