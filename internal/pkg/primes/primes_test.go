package primes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPrime_KnownPrimes(t *testing.T) {
	primes := []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 1000003, 1000000007}
	for _, n := range primes {
		assert.True(t, IsPrime(n), "expected %d to be prime", n)
	}
}

func TestIsPrime_KnownComposites(t *testing.T) {
	composites := []int64{0, 1, 4, 6, 8, 9, 10, 12, 14, 15, 16, 18, 20, 21, 25, 33, 35, 49, 121}
	for _, n := range composites {
		assert.False(t, IsPrime(n), "expected %d to not be prime", n)
	}
}

func TestIsPrime_Negatives(t *testing.T) {
	for _, n := range []int64{-1, -2, -7, -100} {
		assert.False(t, IsPrime(n))
	}
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name    string
		in      float64
		want    int64
		wantErr bool
	}{
		{"exact integer", 7.0, 7, false},
		{"within tolerance above", 19.000000000000004, 19, false},
		{"within tolerance below", 4.000000000000001, 4, false},
		{"half", 2.5, 0, true},
		{"fraction", 3.7, 0, true},
		{"just outside tolerance", 5.0001, 0, true},
		{"nan", math.NaN(), 0, true},
		{"positive inf", math.Inf(1), 0, true},
		{"negative inf", math.Inf(-1), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceFloat(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNotInteger)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheck_RejectsBooleans(t *testing.T) {
	for _, v := range []any{true, false} {
		_, err := Check(v)
		assert.ErrorIs(t, err, ErrBoolOperand)
	}
}

func TestCheck_FloatCoercion(t *testing.T) {
	ok, err := Check(19.000000000000004)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Check(4.000000000000001)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Check(7.0)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = Check(2.5)
	assert.ErrorIs(t, err, ErrNotInteger)
}

func TestCheck_IntegerKinds(t *testing.T) {
	ok, err := Check(13)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Check(int64(1000000007))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Check(int32(9))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheck_NonNumeric(t *testing.T) {
	_, err := Check("17")
	assert.ErrorIs(t, err, ErrNotNumber)

	_, err = Check(nil)
	assert.ErrorIs(t, err, ErrNotNumber)
}
