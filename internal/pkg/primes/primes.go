// Package primes implements a primality predicate with strict operand
// validation: booleans are rejected outright and floats are accepted only
// when they sit within a small tolerance of an integer value.
package primes

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon is the maximum distance from an integer at which a float
// operand is coerced instead of rejected.
const Epsilon = 1e-10

var (
	ErrBoolOperand = errors.New("boolean is not a valid operand")
	ErrNotInteger  = errors.New("float operand is not close enough to an integer")
	ErrNotNumber   = errors.New("operand is not a number")
)

// IsPrime reports whether n is prime. Numbers below 2 are not prime.
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	for i := int64(2); i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// CoerceFloat converts f to the nearest integer when the distance is below
// Epsilon. NaN, infinities and genuine fractions return ErrNotInteger.
func CoerceFloat(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotInteger
	}
	nearest := math.Round(f)
	if math.Abs(f-nearest) >= Epsilon {
		return 0, fmt.Errorf("%w: %v", ErrNotInteger, f)
	}
	if nearest > math.MaxInt64 || nearest < math.MinInt64 {
		return 0, fmt.Errorf("%w: %v", ErrNotInteger, f)
	}
	return int64(nearest), nil
}

// Check evaluates primality for a dynamically typed operand, typically a
// value coming out of a JSON decoder. Booleans are always a type error,
// integer kinds pass through and floats are coerced via CoerceFloat.
func Check(v any) (bool, error) {
	switch n := v.(type) {
	case bool:
		return false, ErrBoolOperand
	case int:
		return IsPrime(int64(n)), nil
	case int32:
		return IsPrime(int64(n)), nil
	case int64:
		return IsPrime(n), nil
	case float32:
		coerced, err := CoerceFloat(float64(n))
		if err != nil {
			return false, err
		}
		return IsPrime(coerced), nil
	case float64:
		coerced, err := CoerceFloat(n)
		if err != nil {
			return false, err
		}
		return IsPrime(coerced), nil
	default:
		return false, fmt.Errorf("%w: %T", ErrNotNumber, v)
	}
}
