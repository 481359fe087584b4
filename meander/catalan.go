package meander

import (
	"errors"
	"math"
	"math/bits"
)

var (
	// ErrNoSlots indicates a request for a matching of zero or fewer points.
	ErrNoSlots = errors.New("meander: slot count must be positive")

	// ErrOddSlots indicates an odd number of points, which admits no perfect matching.
	ErrOddSlots = errors.New("meander: slot count must be even")
)

// Catalan returns the d-th Catalan number, or math.MaxUint64 once the exact
// value no longer fits. Negative d yields 0.
func Catalan(d int) uint64 {
	if d < 0 {
		return 0
	}
	// C(k+1) = C(k)·2(2k+1)/(k+2); the division is exact.
	c := uint64(1)
	for k := 0; k < d; k++ {
		hi, lo := bits.Mul64(c, uint64(2*(2*k+1)))
		div := uint64(k + 2)
		if hi >= div {
			return math.MaxUint64
		}
		c, _ = bits.Div64(hi, lo, div)
	}

	return c
}

// Count returns the number of non-crossing perfect matchings of slots points.
func Count(slots int) (uint64, error) {
	if err := checkSlots(slots); err != nil {
		return 0, err
	}

	return Catalan(slots / 2), nil
}

// IsNonCrossing reports whether p is a perfect, non-crossing matching given as
// a partner array (p[i] = j ⇔ p[j] = i, i ≠ j).
func IsNonCrossing(p []int) bool {
	n := len(p)
	if n == 0 || n%2 != 0 {
		return false
	}
	// Scan left to right: an arc opens at its smaller end and must close
	// exactly when it is on top of the stack.
	stack := make([]int, 0, n/2)
	for i, j := range p {
		if j < 0 || j >= n || j == i || p[j] != i {
			return false
		}
		if j > i {
			stack = append(stack, i)
			continue
		}
		if len(stack) == 0 || stack[len(stack)-1] != j {
			return false
		}
		stack = stack[:len(stack)-1]
	}

	return len(stack) == 0
}

func checkSlots(slots int) error {
	if slots <= 0 {
		return ErrNoSlots
	}
	if slots%2 != 0 {
		return ErrOddSlots
	}

	return nil
}
