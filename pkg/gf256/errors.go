package gf256

import "github.com/pkg/errors"

var (
	// ErrInvalidOperand is returned when zero is given where the field
	// requires a nonzero element, such as the logarithm of zero.
	ErrInvalidOperand = errors.New("gf256: invalid operand")

	// ErrDivisionByZero is returned by Div when the divisor is zero. It also
	// surfaces from interpolation over points with coincident X coordinates.
	ErrDivisionByZero = errors.New("gf256: division by zero")

	// ErrInvalidArgument reports malformed parameters.
	ErrInvalidArgument = errors.New("gf256: invalid argument")
)
