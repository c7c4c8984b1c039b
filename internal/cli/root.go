// Package cli provides the command-line interface for Swatch.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/swatch/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "swatch",
	Short: "An interactive previewer for palette files",
	Long: `Swatch renders interactive previews for palette files: plain text files
with one 6-digit hexadecimal colour code per line.

It paints inline swatches, exposes copyable index and label tokens per
colour line, offers a colour picker that rewrites a line's hex code in
place, and flags non-conforming lines as warnings.`,
	Version:      version.Short(),
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(importCmd)
}

// normalizeFlagName accepts the American spelling for flags named with
// the British one.
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "colors":
		name = "colours"
	}
	return pflag.NormalizedName(name)
}

// newLogger builds the diagnostics logger. Verbose runs log debug events
// to stderr; otherwise logging is off entirely, matching the advisory
// nature of everything it records.
func newLogger(cmd *cobra.Command) hclog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		return hclog.New(&hclog.LoggerOptions{
			Name:   "swatch",
			Output: os.Stderr,
			Level:  hclog.Debug,
		})
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "swatch",
		Output: io.Discard,
		Level:  hclog.Off,
	})
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
