package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sss256",
	Short: "Split a secret into shares, any threshold of which recover it",
	Long: `sss256 implements Shamir's Secret Sharing over GF(256).

A file is split into N share files so that any K of them rebuild it exactly,
while K-1 of them reveal nothing about it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		return setupLogging(cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.sss256.yaml)")
	rootCmd.PersistentFlags().String("field", "", `GF(256) representation: "rijndael" or a reduction polynomial such as 0x11d (default 0x11d)`)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	bindFlag(keyField, rootCmd.PersistentFlags().Lookup("field"))
	bindFlag(keyVerbose, rootCmd.PersistentFlags().Lookup("verbose"))
	bindFlag(keyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}
