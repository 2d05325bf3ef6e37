package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "prepub",
		Short: "Pre-publishing checklist for Python packages",
		Long: `Prepub verifies that a Python package is ready to upload:

  - version consistency between pyproject.toml and _version.py
  - required files, metadata fields and README sections
  - dependency hygiene (heavyweight SDKs belong in optional extras)
  - built artifacts under dist/ matching the declared name and version
  - detached signatures against a public keyring

It can also import the package in a Python subprocess to prove the
published surface loads, and expose every check as an MCP tool.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringP("dir", "C", ".", "Project directory to run against")

	// Add subcommands
	rootCmd.AddCommand(NewCheckCmd())
	rootCmd.AddCommand(NewVerifyImportCmd())
	rootCmd.AddCommand(NewDigestCmd())
	rootCmd.AddCommand(NewHistoryCmd())
	rootCmd.AddCommand(NewMCPCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// projectDir resolves the persistent --dir flag.
func projectDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		return "."
	}
	return dir
}
