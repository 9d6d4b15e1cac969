// Package gf256 implements arithmetic in the finite field GF(2^8).
//
// Elements are bytes. Addition and subtraction are XOR; multiplication and
// division go through logarithm/exponential tables held by a Field. A Field
// is immutable once built, so a single instance can be shared between
// goroutines without locking.
package gf256

import (
	"fmt"
	"sync"
)

// order is the number of nonzero elements, i.e. the size of the
// multiplicative group.
const order = 255

// Element is a single GF(256) value.
type Element uint8

// New reduces v modulo 256 and returns it as an Element.
func New(v int) Element {
	return Element(uint8(v & 0xff))
}

// Add returns a + b.
func (a Element) Add(b Element) Element {
	return a ^ b
}

// Sub returns a - b, which in characteristic 2 is the same as a + b.
func (a Element) Sub(b Element) Element {
	return a ^ b
}

// IsZero reports whether a is the additive identity.
func (a Element) IsZero() bool {
	return a == 0
}

// Add combines two elements. Symmetric with subtraction.
func Add(a, b Element) Element {
	return a ^ b
}

// Sub subtracts b from a.
func Sub(a, b Element) Element {
	return a ^ b
}

// Field holds the log/exp tables for one representation of GF(256).
type Field struct {
	exp  [256]byte
	log  [256]byte
	poly uint16
	name string
}

var (
	defaultOnce  sync.Once
	defaultField *Field
)

// Default returns the field built from DefaultPolynomial. The tables are
// generated on first use and shared afterwards.
func Default() *Field {
	defaultOnce.Do(func() {
		defaultField = MustField(DefaultPolynomial)
	})
	return defaultField
}

// Mul returns a * b.
func (f *Field) Mul(a, b Element) Element {
	if a == 0 || b == 0 {
		return 0
	}
	sum := (int(f.log[a]) + int(f.log[b])) % order
	return Element(f.exp[sum])
}

// Div returns a / b. It fails with ErrDivisionByZero when b is zero.
func (f *Field) Div(a, b Element) (Element, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == 0 {
		return 0, nil
	}
	diff := ((int(f.log[a])-int(f.log[b]))%order + order) % order
	return Element(f.exp[diff]), nil
}

// Inverse returns the multiplicative inverse of a.
func (f *Field) Inverse(a Element) (Element, error) {
	return f.Div(1, a)
}

// Log returns the discrete logarithm of a with respect to the field's
// generator. Zero has no logarithm.
func (f *Field) Log(a Element) (int, error) {
	if a == 0 {
		return 0, ErrInvalidOperand
	}
	return int(f.log[a]), nil
}

// Exp returns the generator raised to the power i. Negative exponents wrap
// around the multiplicative group.
func (f *Field) Exp(i int) Element {
	i %= order
	if i < 0 {
		i += order
	}
	return Element(f.exp[i])
}

// Polynomial returns the reduction polynomial the tables were built with.
func (f *Field) Polynomial() uint16 {
	return f.poly
}

func (f *Field) String() string {
	return fmt.Sprintf("GF(256)/%s(%#x)", f.name, f.poly)
}
