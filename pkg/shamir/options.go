package shamir

import (
	"io"

	"github.com/Beastly713/sss256/pkg/crypto/secrets"
	"github.com/Beastly713/sss256/pkg/gf256"
)

type config struct {
	field     *gf256.Field
	rand      io.Reader
	threshold int
	ids       []gf256.Element
}

// Option configures Split and Combine.
type Option func(*config)

// WithField selects the field representation. Shares can only be combined
// with the field they were split with.
func WithField(f *gf256.Field) Option {
	return func(c *config) {
		c.field = f
	}
}

// WithRandom replaces the randomness source used for identifiers and
// polynomial coefficients.
func WithRandom(r io.Reader) Option {
	return func(c *config) {
		c.rand = r
	}
}

// WithThreshold makes Combine refuse to run with fewer than k shares. Without
// it Combine cannot tell that shares are missing and returns a wrong secret.
func WithThreshold(k int) Option {
	return func(c *config) {
		c.threshold = k
	}
}

// WithIdentifiers makes Split use the given share identifiers instead of
// picking them at random. They must be distinct, nonzero and one per share.
func WithIdentifiers(ids []gf256.Element) Option {
	return func(c *config) {
		c.ids = ids
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		field: gf256.Default(),
		rand:  secrets.Random,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
