package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/Beastly713/sss256/pkg/shamir"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var combineCmd = &cobra.Command{
	Use:     "combine [paths...]",
	Aliases: []string{"bind"},
	Short:   "Recover a secret from its shares",
	Long: `Recover a secret from share files. Paths may be share files or
directories, which are scanned for *.share files (default: current directory).

Armored shares record the original filename and threshold, so the secret is
written to the destination directory under its original name. Raw shares carry no metadata:
pass -t to have the share count checked and -o to name the output, otherwise
the secret goes to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		explicitK, _ := cmd.Flags().GetInt("threshold")
		output, _ := cmd.Flags().GetString("output")
		destDir, _ := cmd.Flags().GetString("destination")
		overwrite, _ := cmd.Flags().GetBool("overwrite")

		paths, err := collectPaths(args)
		if err != nil {
			return err
		}
		shares, err := openShares(paths)
		if err != nil {
			return err
		}
		defer closeShares(shares)

		groups := groupShares(shares)
		if output != "" && len(groups) > 1 {
			return errors.Errorf("found shares of %d different secrets, cannot write them all to %s", len(groups), output)
		}

		for _, g := range groups {
			target := output
			if target == "" {
				ref, err := g.header()
				if err != nil {
					return err
				}
				if ref != nil {
					dir := destDir
					if dir == "" {
						dir = "."
					}
					target = filepath.Join(dir, ref.OriginalFilename)
				} else {
					if destDir != "" {
						return errors.New("raw shares carry no filename, use -o instead of --destination")
					}
					target = "-"
				}
			}

			if err := combineGroup(g, explicitK, target, overwrite, cmd.OutOrStdout()); err != nil {
				return err
			}
		}
		return nil
	},
}

// combineGroup reconstructs one secret into target ("-" for stdout).
func combineGroup(g *shareGroup, explicitK int, target string, overwrite bool, stdout io.Writer) error {
	ref, err := g.header()
	if err != nil {
		return err
	}
	field, err := groupField(ref)
	if err != nil {
		return err
	}

	opts := []shamir.Option{shamir.WithField(field)}
	if k := resolveThreshold(explicitK, ref); k > 0 {
		opts = append(opts, shamir.WithThreshold(k))
	} else {
		log.Warn().Msg("threshold unknown, a missing share will produce garbage instead of an error")
	}

	log.Debug().Str("group", g.Name).Int("shares", len(g.Shares)).Stringer("field", field).Msg("combining")

	if target == "-" {
		return errors.Wrap(shamir.CombineStream(g.readers(), stdout, opts...), "combine failed")
	}

	if !overwrite {
		if _, err := os.Stat(target); err == nil {
			return errors.Errorf("%s already exists, use --overwrite to replace it", target)
		}
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrap(err, "failed to create destination directory")
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}

	err = shamir.CombineStream(g.readers(), out, opts...)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(target)
		return errors.Wrap(err, "combine failed")
	}

	log.Info().Str("file", target).Int("shares", len(g.Shares)).Msg("secret recovered")
	return nil
}

// combineFiles is the non-interactive core shared with the TUI: it combines
// the given share files and writes each recovered secret into destDir.
func combineFiles(paths []string, destDir string, overwrite bool) error {
	shares, err := openShares(paths)
	if err != nil {
		return err
	}
	defer closeShares(shares)

	for _, g := range groupShares(shares) {
		ref, err := g.header()
		if err != nil {
			return err
		}
		if ref == nil {
			return errors.New("raw shares carry no filename, combine them with the combine command")
		}
		if len(g.Shares) < ref.Threshold {
			return errors.Wrapf(shamir.ErrInsufficientShares, "%s needs %d shares, selected %d", ref.OriginalFilename, ref.Threshold, len(g.Shares))
		}
		if err := combineGroup(g, 0, filepath.Join(destDir, ref.OriginalFilename), overwrite, io.Discard); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(combineCmd)

	combineCmd.Flags().IntP("threshold", "t", 0, "number of shares required (default: read from armored headers)")
	combineCmd.Flags().StringP("output", "o", "", `output file, "-" for stdout (default: original filename, or stdout for raw shares)`)
	combineCmd.Flags().StringP("destination", "d", "", "directory for recovered files named by their headers (default: current directory)")
	combineCmd.Flags().Bool("overwrite", false, "replace an existing output file")
}
