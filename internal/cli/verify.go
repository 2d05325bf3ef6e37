package cli

import (
	"fmt"

	"github.com/ralt/prepub/internal/config"
	"github.com/ralt/prepub/internal/verify"
	"github.com/spf13/cobra"
)

// NewVerifyImportCmd creates the verify-import command
func NewVerifyImportCmd() *cobra.Command {
	var python string

	cmd := &cobra.Command{
		Use:   "verify-import",
		Short: "Import the package in a Python subprocess",
		Long: `Runs a fresh Python interpreter with the project's source directory on
PYTHONPATH, imports the package's entry points and prints the version it
declares. This is the smoke test that the published surface actually
loads.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := projectDir(cmd)

			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}
			if python != "" {
				cfg.Python = python
			}

			opts, subject, err := verify.OptionsFor(dir, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			res, err := verify.Run(cmd.Context(), verify.NewRunner(), opts)
			if err != nil {
				fmt.Fprintf(out, "❌ Import failed: %v\n", err)
				return fmt.Errorf("import verification failed")
			}

			fmt.Fprintln(out, "✅ Import successful!")
			fmt.Fprintf(out, "📦 Package version: %s\n", res.Version)
			fmt.Fprintf(out, "🎉 Ready to use %s!\n", subject)
			return nil
		},
	}

	cmd.Flags().StringVar(&python, "python", "", "Python interpreter to run (overrides .prepub.yaml)")

	return cmd
}
