// Package pointers provides fixed-size arrays of unsigned slot indices whose
// element width is chosen once from the largest value they must hold.
package pointers

import "math"

// Width is the number of bits used to store each element of an Array.
type Width uint8

const (
	W8  Width = 8
	W16 Width = 16
	W32 Width = 32
	W64 Width = 64
)

// WidthFor returns the narrowest width able to hold every value in [0, max].
func WidthFor(max int) Width {
	switch {
	case max <= math.MaxUint8:
		return W8
	case max <= math.MaxUint16:
		return W16
	case uint64(max) <= math.MaxUint32:
		return W32
	default:
		return W64
	}
}

// Array is a fixed-length array of non-negative integers.
type Array interface {
	// Get returns the value stored at i.
	Get(i int) int
	// Set stores v at i. v must fit the array's width.
	Set(i, v int)
	// Len returns the number of elements.
	Len() int
	// Width returns the element width.
	Width() Width
}

type unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

type array[T unsigned] []T

func (a array[T]) Get(i int) int { return int(a[i]) }

func (a array[T]) Set(i, v int) { a[i] = T(v) }

func (a array[T]) Len() int { return len(a) }

func (a array[T]) Width() Width {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return W8
	case uint16:
		return W16
	case uint32:
		return W32
	}
	return W64
}

// New returns n zeroed elements, each wide enough to hold values up to max.
func New(n, max int) Array {
	switch WidthFor(max) {
	case W8:
		return make(array[uint8], n)
	case W16:
		return make(array[uint16], n)
	case W32:
		return make(array[uint32], n)
	}
	return make(array[uint64], n)
}
