package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ralt/prepub/internal/config"
	"github.com/ralt/prepub/internal/dist"
	"github.com/ralt/prepub/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewDigestCmd creates the digest command
func NewDigestCmd() *cobra.Command {
	var full bool
	var output string

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Print checksums for built artifacts",
		Long: `Calculates the digests PyPI publishes (MD5, SHA256, BLAKE2b-256) for
every artifact under the dist directory. The default output is
sha256sum-compatible; --full prints every digest.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := projectDir(cmd)

			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}

			found, err := dist.Scan(filepath.Join(dir, cfg.DistDir))
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("no %s/ directory (run: python -m build)", cfg.DistDir)
				}
				return err
			}
			if len(found) == 0 {
				return fmt.Errorf("no artifacts in %s/ (run: python -m build)", cfg.DistDir)
			}

			var b strings.Builder
			for _, f := range found {
				digest, err := utils.FileDigest(f.Path)
				if err != nil {
					return err
				}
				base := filepath.Base(f.Path)
				if full {
					fmt.Fprintf(&b, "%s (%d bytes)\n", base, digest.Size)
					fmt.Fprintf(&b, "  md5:         %s\n", digest.MD5)
					fmt.Fprintf(&b, "  sha256:      %s\n", digest.SHA256)
					fmt.Fprintf(&b, "  blake2b-256: %s\n", digest.Blake2b256)
				} else {
					fmt.Fprintf(&b, "%s  %s\n", digest.SHA256, base)
				}
			}

			if output != "" {
				if err := utils.WriteFile(output, []byte(b.String()), 0644); err != nil {
					return err
				}
				logrus.Infof("Wrote digest manifest: %s", output)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), b.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Print MD5, SHA256 and BLAKE2b-256 for each artifact")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the manifest to a file instead of stdout")

	return cmd
}
