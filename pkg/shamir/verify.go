package shamir

import (
	"bytes"
	"context"
	"runtime"

	"github.com/Beastly713/sss256/pkg/crypto/secrets"
	"github.com/Beastly713/sss256/pkg/gf256"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// maxSubsets bounds the number of combinations Verify reconstructs.
const maxSubsets = 1024

// Verify reconstructs the secret from every threshold-sized subset of parts
// (up to maxSubsets of them) and checks that all subsets agree. A corrupted
// or foreign share makes the subsets containing it disagree with the rest.
// With exactly threshold parts there is a single subset and nothing to
// compare.
func Verify(ctx context.Context, parts [][]byte, threshold int, opts ...Option) error {
	if threshold < 1 {
		return errors.Wrapf(gf256.ErrInvalidArgument, "threshold must be at least 1, got %d", threshold)
	}
	if len(parts) < threshold {
		return errors.Wrapf(ErrInsufficientShares, "have %d, need %d", len(parts), threshold)
	}

	subsets := combinations(len(parts), threshold, maxSubsets)
	results := make([]*secrets.Secret, len(subsets))
	defer func() {
		for _, s := range results {
			if s != nil {
				s.Destroy()
			}
		}
	}()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, idx := range subsets {
		i, idx := i, idx
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			subset := make([][]byte, len(idx))
			for j, k := range idx {
				subset[j] = parts[k]
			}
			secret, err := Combine(subset, opts...)
			if err != nil {
				return errors.Wrapf(err, "shares %v", idx)
			}
			results[i] = secrets.WrapSecret(secret)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := 1; i < len(results); i++ {
		if !bytes.Equal(results[0].Bytes(), results[i].Bytes()) {
			return errors.Wrapf(ErrInconsistentShares, "shares %v and %v disagree", subsets[0], subsets[i])
		}
	}
	return nil
}

// combinations returns up to limit k-element subsets of [0,n) in
// lexicographic order.
func combinations(n, k, limit int) [][]int {
	var out [][]int
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for len(out) < limit {
		out = append(out, append([]int(nil), idx...))

		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return out
}
