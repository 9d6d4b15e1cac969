package cmd

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Beastly713/sss256/pkg/crypto/secrets"
	"github.com/Beastly713/sss256/pkg/format"
	"github.com/Beastly713/sss256/pkg/shamir"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// stdinName is the base name given to shares of a secret read from stdin.
const stdinName = "secret"

var splitCmd = &cobra.Command{
	Use:   "split [file|-]",
	Short: "Split a file into secret shares",
	Long: `Split a file into N share files. Any K of them recover the file;
fewer than K reveal nothing about it.

Example:
  sss256 split diary.txt -n 5 -t 3

  This creates diary_1_of_5.share ... diary_5_of_5.share. Any 3 are needed
  to recover diary.txt. Use "-" to read the secret from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		total := v.GetInt(keyShares)
		k := v.GetInt(keyThreshold)
		if total < 1 || total > shamir.MaxShares {
			return errors.Errorf("number of shares (-n) must be between 1 and %d", shamir.MaxShares)
		}
		if k < 1 {
			return errors.New("threshold (-t) must be at least 1")
		}
		if k > total {
			return errors.New("threshold cannot be greater than the number of shares")
		}

		field, err := configuredField()
		if err != nil {
			return err
		}

		var (
			in       io.Reader
			baseName string
			destDir  = v.GetString(keyDestination)
		)
		if args[0] == "-" {
			in = cmd.InOrStdin()
			baseName = stdinName
			if destDir == "" {
				destDir = "."
			}
		} else {
			file, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "failed to open file")
			}
			defer file.Close()
			in = file
			baseName = filepath.Base(args[0])
			if destDir == "" {
				destDir = filepath.Dir(args[0])
			}
		}

		if err := os.MkdirAll(destDir, 0755); err != nil {
			return errors.Wrap(err, "failed to create destination directory")
		}

		ids, err := shamir.Identifiers(total, secrets.Random)
		if err != nil {
			return err
		}

		armor := v.GetBool(keyArmor)
		timestamp := time.Now().Unix()
		splitID := uuid.NewString()
		writers := make([]io.Writer, total)
		paths := make([]string, total)

		for i := 0; i < total; i++ {
			index := i + 1
			paths[i] = filepath.Join(destDir, shareFileName(baseName, index, total))

			outFile, err := os.OpenFile(paths[i], os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
			if err != nil {
				return errors.Wrapf(err, "failed to create share file %s", paths[i])
			}
			defer outFile.Close()

			var header *format.Header
			if armor {
				header = &format.Header{
					OriginalFilename: baseName,
					Timestamp:        timestamp,
					SplitID:          splitID,
					Index:            index,
					Total:            total,
					Threshold:        k,
					Identifier:       byte(ids[i]),
					Field:            field.Name(),
				}
			}
			w, err := format.NewWriter(outFile, header)
			if err != nil {
				return errors.Wrapf(err, "failed to write header of share %d", index)
			}
			writers[i] = w
		}

		log.Debug().Int("shares", total).Int("threshold", k).Stringer("field", field).Bool("armor", armor).Msg("splitting")

		err = shamir.SplitStream(in, writers, k, shamir.WithField(field), shamir.WithIdentifiers(ids))
		if err != nil {
			for _, p := range paths {
				os.Remove(p)
			}
			return errors.Wrap(err, "split failed")
		}

		for _, p := range paths {
			log.Info().Str("file", p).Msg("created share")
		}
		log.Info().Int("shares", total).Int("threshold", k).Msg("done, keep your shares in separate places")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().IntP("shares", "n", 0, "total number of shares to create")
	splitCmd.Flags().IntP("threshold", "t", 0, "number of shares required to recover the secret")
	splitCmd.Flags().StringP("destination", "d", "", "directory to write shares to (default: next to the input file)")
	splitCmd.Flags().Bool("armor", false, "prefix each share with a readable header describing the split")

	bindFlag(keyShares, splitCmd.Flags().Lookup("shares"))
	bindFlag(keyThreshold, splitCmd.Flags().Lookup("threshold"))
	bindFlag(keyDestination, splitCmd.Flags().Lookup("destination"))
	bindFlag(keyArmor, splitCmd.Flags().Lookup("armor"))
}
