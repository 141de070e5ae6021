// Package intutils provides utilities for working with ints
package intutils

// Min calculates and returns the minimum integer in a list. Min of an
// empty list is 0.
func Min(ints ...int) int {
	if len(ints) == 0 {
		return 0
	}

	min := ints[0]
	for _, val := range ints {
		if val < min {
			min = val
		}
	}
	return min
}

// Prod calculates the product of a list of ints
func Prod(ints ...int) int {
	prod := 1
	for _, val := range ints {
		prod *= val
	}
	return prod
}
