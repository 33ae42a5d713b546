package toolbox

import (
	"strconv"
	"strings"

	"hotelreserve/internal/pkg/primes"
)

// Service implements the list-algorithm exercises. Everything here is
// pure computation, so there is no repository behind it.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// BubbleSort returns a sorted copy using the classic O(n^2) exchange sort.
func (s *Service) BubbleSort(numbers []float64) []float64 {
	out := make([]float64, len(numbers))
	copy(out, numbers)

	for i := 0; i < len(out); i++ {
		swapped := false
		for j := 0; j < len(out)-i-1; j++ {
			if out[j] > out[j+1] {
				out[j], out[j+1] = out[j+1], out[j]
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
	return out
}

// QuickSort returns a sorted copy using in-place Lomuto partitioning.
func (s *Service) QuickSort(numbers []float64) []float64 {
	out := make([]float64, len(numbers))
	copy(out, numbers)
	quickSort(out, 0, len(out)-1)
	return out
}

func quickSort(a []float64, lo, hi int) {
	if lo >= hi {
		return
	}
	p := partition(a, lo, hi)
	quickSort(a, lo, p-1)
	quickSort(a, p+1, hi)
}

func partition(a []float64, lo, hi int) int {
	pivot := a[hi]
	i := lo
	for j := lo; j < hi; j++ {
		if a[j] < pivot {
			a[i], a[j] = a[j], a[i]
			i++
		}
	}
	a[i], a[hi] = a[hi], a[i]
	return i
}

// FilterEven keeps even values and pages through the result. Page numbers
// start at 1; a zero page size defaults to 10.
func (s *Service) FilterEven(req FilterEvenRequest) *FilterEvenResponse {
	evens := make([]int64, 0, len(req.Numbers))
	for _, n := range req.Numbers {
		if n%2 == 0 {
			evens = append(evens, n)
		}
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	start := (page - 1) * pageSize
	if start > len(evens) {
		start = len(evens)
	}
	end := start + pageSize
	if end > len(evens) {
		end = len(evens)
	}

	return &FilterEvenResponse{
		Numbers:  evens[start:end],
		Page:     page,
		PageSize: pageSize,
		Total:    len(evens),
	}
}

func (s *Service) Sum(numbers []float64) float64 {
	var sum float64
	for _, n := range numbers {
		sum += n
	}
	return sum
}

func (s *Service) Max(numbers []float64) (float64, error) {
	if len(numbers) == 0 {
		return 0, ErrEmptyList
	}
	max := numbers[0]
	for _, n := range numbers[1:] {
		if n > max {
			max = n
		}
	}
	return max, nil
}

func (s *Service) Average(numbers []float64) (float64, error) {
	if len(numbers) == 0 {
		return 0, ErrEmptyList
	}
	return s.Sum(numbers) / float64(len(numbers)), nil
}

// BinarySearch requires ascending input and reports the index of target.
func (s *Service) BinarySearch(req BinarySearchRequest) (*BinarySearchResponse, error) {
	if len(req.Numbers) == 0 {
		return nil, ErrEmptyList
	}
	for i := 1; i < len(req.Numbers); i++ {
		if req.Numbers[i] < req.Numbers[i-1] {
			return nil, ErrNotSorted
		}
	}

	lo, hi := 0, len(req.Numbers)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		switch {
		case req.Numbers[mid] == req.Target:
			return &BinarySearchResponse{Found: true, Index: mid}, nil
		case req.Numbers[mid] < req.Target:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return &BinarySearchResponse{Found: false, Index: -1}, nil
}

// CheckPrime parses a raw operand the way the CLI does: booleans are
// rejected outright, integers parse directly, floats must sit within the
// coercion tolerance of an integer.
func (s *Service) CheckPrime(raw string) (*PrimeResponse, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "true" || trimmed == "false" {
		return nil, primes.ErrBoolOperand
	}

	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return &PrimeResponse{Number: n, IsPrime: primes.IsPrime(n)}, nil
	}

	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, primes.ErrNotNumber
	}
	n, err := primes.CoerceFloat(f)
	if err != nil {
		return nil, err
	}
	return &PrimeResponse{Number: n, IsPrime: primes.IsPrime(n)}, nil
}
