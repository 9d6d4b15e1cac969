package cmd

import (
	"context"

	"github.com/Beastly713/sss256/pkg/crypto/secrets"
	"github.com/Beastly713/sss256/pkg/shamir"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [paths...]",
	Short: "Check that a set of shares agree on one secret",
	Long: `Reconstruct the secret from every threshold-sized subset of the given
shares and check that all of them agree. A corrupted share, or one from a
different split, makes the subsets containing it disagree.

At least threshold+1 shares are needed for the check to mean anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		explicitK, _ := cmd.Flags().GetInt("threshold")

		paths, err := collectPaths(args)
		if err != nil {
			return err
		}
		shares, err := openShares(paths)
		if err != nil {
			return err
		}
		defer closeShares(shares)

		for _, g := range groupShares(shares) {
			if err := verifyGroup(cmd.Context(), g, explicitK); err != nil {
				return err
			}
		}
		return nil
	},
}

func verifyGroup(ctx context.Context, g *shareGroup, explicitK int) error {
	ref, err := g.header()
	if err != nil {
		return err
	}
	k := resolveThreshold(explicitK, ref)
	if k < 1 {
		return errors.New("threshold unknown for raw shares, pass -t")
	}
	field, err := groupField(ref)
	if err != nil {
		return err
	}

	bodies := make([]*secrets.Secret, 0, len(g.Shares))
	defer func() {
		for _, b := range bodies {
			b.Destroy()
		}
	}()
	parts := make([][]byte, len(g.Shares))
	for i, s := range g.Shares {
		body, err := secrets.ReadSecret(s.Body)
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", s.Path)
		}
		bodies = append(bodies, body)
		parts[i] = body.Bytes()
	}

	if len(parts) == k {
		log.Warn().Str("group", g.Name).Int("threshold", k).Msg("only threshold shares given, nothing to compare")
	}
	if err := shamir.Verify(ctx, parts, k, shamir.WithField(field)); err != nil {
		return errors.Wrapf(err, "verification of %s failed", g.Name)
	}
	log.Info().Str("group", g.Name).Int("shares", len(parts)).Int("threshold", k).Msg("shares are consistent")
	return nil
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().IntP("threshold", "t", 0, "number of shares required (default: read from armored headers)")
}
