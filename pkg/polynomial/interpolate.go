package polynomial

import (
	"github.com/Beastly713/sss256/pkg/gf256"
	"github.com/pkg/errors"
)

// Point is a sample (X, Y) of a polynomial.
type Point struct {
	X gf256.Element
	Y gf256.Element
}

// Interpolate returns the unique polynomial of degree at most len(points)-1
// that passes through every point:
//
//	P(x) = sum_i y_i * prod_{j!=i} (x - x_j) / (x_i - x_j)
//
// The X coordinates must be pairwise distinct; a repeated X fails with
// gf256.ErrDivisionByZero.
func Interpolate(f *gf256.Field, points []Point) (Polynomial, error) {
	n := len(points)
	if n == 0 {
		return Polynomial{}, errors.Wrap(gf256.ErrInvalidArgument, "no points to interpolate")
	}

	result := make([]gf256.Element, n)
	basis := make([]gf256.Element, n)

	for i := range points {
		// basis = prod_{j!=i} (x - x_j), built up one linear factor at a time
		for k := range basis {
			basis[k] = 0
		}
		basis[0] = 1
		deg := 0
		denom := gf256.Element(1)

		for j := range points {
			if i == j {
				continue
			}
			mulLinear(f, basis[:deg+2], points[j].X)
			deg++
			denom = f.Mul(denom, points[i].X.Sub(points[j].X))
		}

		scale, err := f.Div(points[i].Y, denom)
		if err != nil {
			return Polynomial{}, errors.Wrapf(err, "point %d", i)
		}

		for k := 0; k <= deg; k++ {
			result[k] = result[k].Add(f.Mul(basis[k], scale))
		}
	}

	return Polynomial{field: f, coefficients: result}, nil
}

// mulLinear multiplies the polynomial held in c[:len(c)-1] by (x - root) in
// place. c[len(c)-1] must be zero on entry.
func mulLinear(f *gf256.Field, c []gf256.Element, root gf256.Element) {
	for k := len(c) - 1; k > 0; k-- {
		c[k] = c[k-1].Sub(f.Mul(c[k], root))
	}
	c[0] = f.Mul(c[0], root)
}

// EvaluateAt returns the value at x of the polynomial passing through the
// points, without building its coefficients.
func EvaluateAt(f *gf256.Field, points []Point, x gf256.Element) (gf256.Element, error) {
	if len(points) == 0 {
		return 0, errors.Wrap(gf256.ErrInvalidArgument, "no points to interpolate")
	}

	var result gf256.Element
	for i := range points {
		basis := gf256.Element(1)
		for j := range points {
			if i == j {
				continue
			}
			term, err := f.Div(x.Sub(points[j].X), points[i].X.Sub(points[j].X))
			if err != nil {
				return 0, errors.Wrapf(err, "point %d", i)
			}
			basis = f.Mul(basis, term)
		}
		result = result.Add(f.Mul(points[i].Y, basis))
	}
	return result, nil
}
