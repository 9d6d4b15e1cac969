// Package polynomial implements polynomials over GF(256) and Lagrange
// interpolation.
package polynomial

import (
	"io"

	"github.com/Beastly713/sss256/pkg/gf256"
	"github.com/pkg/errors"
)

// Polynomial represents c0 + c1*x + ... + cd*x^d over a field. Trailing zero
// coefficients are kept, so the degree is always Len()-1.
type Polynomial struct {
	field        *gf256.Field
	coefficients []gf256.Element
}

// New constructs a polynomial from its coefficients, lowest degree first.
func New(f *gf256.Field, coefficients ...gf256.Element) Polynomial {
	c := make([]gf256.Element, len(coefficients))
	copy(c, coefficients)
	return Polynomial{field: f, coefficients: c}
}

// Random constructs a random polynomial of the given degree but with the
// provided intercept value.
func Random(f *gf256.Field, rnd io.Reader, intercept gf256.Element, degree int) (Polynomial, error) {
	if degree < 0 {
		return Polynomial{}, errors.Wrapf(gf256.ErrInvalidArgument, "negative degree %d", degree)
	}

	raw := make([]byte, degree)
	if _, err := io.ReadFull(rnd, raw); err != nil {
		return Polynomial{}, errors.Wrap(err, "failed to read random coefficients")
	}

	c := make([]gf256.Element, degree+1)
	c[0] = intercept
	for i, b := range raw {
		c[i+1] = gf256.Element(b)
	}
	return Polynomial{field: f, coefficients: c}, nil
}

// Evaluate returns the value of the polynomial at x using Horner's method.
func (p Polynomial) Evaluate(x gf256.Element) (gf256.Element, error) {
	if len(p.coefficients) == 0 {
		return 0, errors.Wrap(gf256.ErrInvalidArgument, "empty polynomial")
	}

	degree := len(p.coefficients) - 1
	out := p.coefficients[degree]
	for i := degree - 1; i >= 0; i-- {
		out = p.field.Mul(out, x).Add(p.coefficients[i])
	}
	return out, nil
}

// Degree returns Len()-1. An empty polynomial reports -1.
func (p Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// Len returns the number of coefficients.
func (p Polynomial) Len() int {
	return len(p.coefficients)
}

// Coefficients returns a copy of the coefficients, lowest degree first.
func (p Polynomial) Coefficients() []gf256.Element {
	c := make([]gf256.Element, len(p.coefficients))
	copy(c, p.coefficients)
	return c
}

// Field returns the field the polynomial is defined over.
func (p Polynomial) Field() *gf256.Field {
	return p.field
}
