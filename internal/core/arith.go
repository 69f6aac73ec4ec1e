package core

type unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// checkedAdd returns a+b or ErrNumericalOverflow if the sum wraps.
func checkedAdd[T unsigned](a, b T) (T, error) {
	sum := a + b
	if sum < a {
		return a, ErrNumericalOverflow
	}
	return sum, nil
}
