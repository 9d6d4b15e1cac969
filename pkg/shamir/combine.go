package shamir

import (
	"bufio"
	"bytes"
	"io"

	"github.com/Beastly713/sss256/pkg/gf256"
	"github.com/Beastly713/sss256/pkg/polynomial"
	"github.com/pkg/errors"
)

// pairStatus is the outcome of reading one record from a share stream.
type pairStatus int

const (
	pairData pairStatus = iota
	pairEOF
)

func readPair(r io.ByteReader) (polynomial.Point, pairStatus, error) {
	x, err := r.ReadByte()
	if err == io.EOF {
		return polynomial.Point{}, pairEOF, nil
	}
	if err != nil {
		return polynomial.Point{}, pairData, err
	}

	y, err := r.ReadByte()
	if err == io.EOF {
		return polynomial.Point{}, pairData, ErrTruncatedShare
	}
	if err != nil {
		return polynomial.Point{}, pairData, err
	}

	return polynomial.Point{X: gf256.Element(x), Y: gf256.Element(y)}, pairData, nil
}

// CombineStream reads the share streams in lockstep and writes the
// reconstructed secret. The streams may be given in any order.
//
// Combining fewer shares than were required at split time is not detected
// unless WithThreshold is given: the output has the right length but is
// unrelated to the secret.
func CombineStream(shares []io.Reader, secret io.Writer, opts ...Option) error {
	cfg := newConfig(opts)
	n := len(shares)
	if n == 0 {
		return errors.Wrap(gf256.ErrInvalidArgument, "no shares to combine")
	}
	if cfg.threshold > 0 && n < cfg.threshold {
		return errors.Wrapf(ErrInsufficientShares, "have %d, need %d", n, cfg.threshold)
	}

	readers := make([]*bufio.Reader, n)
	for i, r := range shares {
		readers[i] = bufio.NewReader(r)
	}
	out := bufio.NewWriter(secret)

	points := make([]polynomial.Point, n)
	for record := int64(0); ; record++ {
		ended := -1
		endedCount := 0

		for i, r := range readers {
			pt, status, err := readPair(r)
			if err != nil {
				return errors.Wrapf(err, "share %d, record %d", i, record)
			}
			if status == pairEOF {
				if ended < 0 {
					ended = i
				}
				endedCount++
				continue
			}
			if record > 0 && pt.X != points[i].X {
				return errors.Wrapf(ErrIdentifierChanged, "share %d, record %d", i, record)
			}
			points[i] = pt
		}

		if endedCount == n {
			break
		}
		if endedCount > 0 {
			return &StreamLengthError{Stream: ended, Record: record}
		}

		b, err := polynomial.EvaluateAt(cfg.field, points, 0)
		if err != nil {
			return errors.Wrapf(err, "record %d", record)
		}
		if err := out.WriteByte(byte(b)); err != nil {
			return errors.Wrap(err, "failed to write secret")
		}
	}

	return errors.Wrap(out.Flush(), "failed to write secret")
}

// Combine reconstructs the secret from the provided parts.
func Combine(parts [][]byte, opts ...Option) ([]byte, error) {
	readers := make([]io.Reader, len(parts))
	for i, p := range parts {
		readers[i] = bytes.NewReader(p)
	}

	var secret bytes.Buffer
	if err := CombineStream(readers, &secret, opts...); err != nil {
		return nil, err
	}
	return secret.Bytes(), nil
}
