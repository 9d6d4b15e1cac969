package gf256

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// DefaultPolynomial is x^8 + x^4 + x^3 + x^2 + 1, the representation used
	// by QR codes and libgfshare. Shares produced with it interoperate with
	// those implementations.
	DefaultPolynomial uint16 = 0x11d

	// RijndaelPolynomial is x^8 + x^4 + x^3 + x + 1 as defined for AES.
	RijndaelPolynomial uint16 = 0x11b

	rijndaelGenerator = 0x03
)

// NewRijndaelField builds the tables for generator 0x03 and the AES
// reduction polynomial. The result matches the Logtable/Alogtable pair of
// the Rijndael reference implementation.
func NewRijndaelField() *Field {
	f := &Field{poly: RijndaelPolynomial, name: "rijndael"}

	x := byte(1)
	for e := 0; e < order; e++ {
		f.exp[e] = x
		f.log[x] = byte(e)

		// x * 3 = (x * 2) + x
		carry := x & 0x80
		next := x << 1
		if carry != 0 {
			next ^= 0x1b
		}
		x = next ^ x
	}
	f.exp[order] = f.exp[0]
	// log(0) is undefined and never consulted.
	f.log[0] = 0

	return f
}

// NewField builds the tables for generator 0x02 and the given degree-8
// reduction polynomial. The polynomial must be primitive: 2 has to generate
// every nonzero element, otherwise the tables would not be mutual inverses.
func NewField(poly uint16) (*Field, error) {
	if poly < 0x100 || poly > 0x1ff {
		return nil, errors.Wrapf(ErrInvalidArgument, "polynomial %#x is not of degree 8", poly)
	}

	f := &Field{poly: poly, name: "poly"}
	f.log[0] = byte((1 - 256) & 0xff)
	f.exp[0] = 1

	for i := 1; i <= order; i++ {
		v := uint16(f.exp[i-1]) << 1
		if v >= 256 {
			v ^= poly
		}
		f.exp[i] = byte(v & 0xff)

		if i < order {
			if f.exp[i] <= 1 {
				return nil, errors.Wrapf(ErrInvalidArgument, "polynomial %#x is not primitive", poly)
			}
			f.log[f.exp[i]] = byte(i)
		}
	}
	if f.exp[order] != 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "polynomial %#x is not primitive", poly)
	}

	return f, nil
}

// MustField is like NewField but panics if the polynomial is rejected.
func MustField(poly uint16) *Field {
	f, err := NewField(poly)
	if err != nil {
		panic(err)
	}
	return f
}

// ParseStrategy selects a field from its configuration name. "rijndael" (or
// "aes") picks the fixed-generator tables, a number such as "0x11d" or "285"
// picks the polynomial tables, and an empty string or "default" returns
// Default().
func ParseStrategy(s string) (*Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return Default(), nil
	case "rijndael", "aes":
		return NewRijndaelField(), nil
	}

	poly, err := strconv.ParseUint(strings.TrimSpace(s), 0, 16)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown field %q", s)
	}
	if uint16(poly) == DefaultPolynomial {
		return Default(), nil
	}
	return NewField(uint16(poly))
}

// Name returns the configuration name that ParseStrategy maps back to this
// field.
func (f *Field) Name() string {
	if f.name == "rijndael" {
		return "rijndael"
	}
	return "0x" + strconv.FormatUint(uint64(f.poly), 16)
}
