// Package shamir splits byte streams into Shamir secret shares over GF(256)
// and combines them back.
//
// Each share is a flat sequence of (X, Y) byte pairs, one pair per secret
// byte. X is the share's identifier, chosen at random from [1,255] and fixed
// for the whole secret; Y is a fresh random polynomial of degree threshold-1
// evaluated at X, whose constant term is the secret byte.
package shamir

import (
	"bufio"
	"bytes"
	"io"

	"github.com/Beastly713/sss256/pkg/gf256"
	"github.com/Beastly713/sss256/pkg/polynomial"
	"github.com/pkg/errors"
)

// MaxShares is the number of nonzero field elements available as identifiers.
const MaxShares = 255

func validateParams(parts, threshold int) error {
	if threshold < 1 {
		return errors.Wrapf(gf256.ErrInvalidArgument, "threshold must be at least 1, got %d", threshold)
	}
	if parts < threshold {
		return errors.Wrapf(gf256.ErrInvalidArgument, "parts (%d) cannot be less than threshold (%d)", parts, threshold)
	}
	if parts > MaxShares {
		return errors.Wrapf(gf256.ErrInvalidArgument, "parts cannot exceed %d, got %d", MaxShares, parts)
	}
	return nil
}

// Identifiers picks n distinct nonzero identifiers uniformly at random.
func Identifiers(n int, rnd io.Reader) ([]gf256.Element, error) {
	if n < 1 || n > MaxShares {
		return nil, errors.Wrapf(gf256.ErrInvalidArgument, "cannot pick %d identifiers", n)
	}

	var picked [256]bool
	ids := make([]gf256.Element, 0, n)
	buf := make([]byte, 1)
	for len(ids) < n {
		if _, err := io.ReadFull(rnd, buf); err != nil {
			return nil, errors.Wrap(err, "failed to read random identifier")
		}
		x := buf[0]
		if x == 0 || picked[x] {
			continue
		}
		picked[x] = true
		ids = append(ids, gf256.Element(x))
	}
	return ids, nil
}

func validateIdentifiers(ids []gf256.Element, n int) error {
	if len(ids) != n {
		return errors.Wrapf(gf256.ErrInvalidArgument, "got %d identifiers for %d shares", len(ids), n)
	}
	var seen [256]bool
	for _, x := range ids {
		if x == 0 || seen[x] {
			return errors.Wrapf(gf256.ErrInvalidArgument, "identifier %d is reserved or repeated", x)
		}
		seen[x] = true
	}
	return nil
}

// SplitStream reads secret to EOF and writes one share stream to each of
// shares. Any threshold of them reconstruct the secret.
func SplitStream(secret io.Reader, shares []io.Writer, threshold int, opts ...Option) error {
	cfg := newConfig(opts)
	if err := validateParams(len(shares), threshold); err != nil {
		return err
	}

	ids := cfg.ids
	if ids == nil {
		var err error
		if ids, err = Identifiers(len(shares), cfg.rand); err != nil {
			return err
		}
	} else if err := validateIdentifiers(ids, len(shares)); err != nil {
		return err
	}

	out := make([]*bufio.Writer, len(shares))
	for i, w := range shares {
		out[i] = bufio.NewWriter(w)
	}

	in := bufio.NewReader(secret)
	record := make([]byte, 2)
	for {
		b, err := in.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "failed to read secret")
		}

		p, err := polynomial.Random(cfg.field, cfg.rand, gf256.Element(b), threshold-1)
		if err != nil {
			return err
		}

		for i, x := range ids {
			y, err := p.Evaluate(x)
			if err != nil {
				return err
			}
			record[0], record[1] = byte(x), byte(y)
			if _, err := out[i].Write(record); err != nil {
				return errors.Wrapf(err, "failed to write share %d", i)
			}
		}
	}

	for i, w := range out {
		if err := w.Flush(); err != nil {
			return errors.Wrapf(err, "failed to write share %d", i)
		}
	}
	return nil
}

// Split divides a secret into parts shares, requiring threshold of them to
// reconstruct.
func Split(secret []byte, parts, threshold int, opts ...Option) ([][]byte, error) {
	if err := validateParams(parts, threshold); err != nil {
		return nil, err
	}

	bufs := make([]*bytes.Buffer, parts)
	writers := make([]io.Writer, parts)
	for i := range bufs {
		bufs[i] = bytes.NewBuffer(make([]byte, 0, 2*len(secret)))
		writers[i] = bufs[i]
	}

	if err := SplitStream(bytes.NewReader(secret), writers, threshold, opts...); err != nil {
		return nil, err
	}

	out := make([][]byte, parts)
	for i, b := range bufs {
		out[i] = b.Bytes()
	}
	return out, nil
}
