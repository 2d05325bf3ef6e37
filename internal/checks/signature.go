package checks

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ralt/prepub/internal/dist"
	"github.com/ralt/prepub/internal/models"
	"github.com/ralt/prepub/internal/signing"
)

// signaturesCheck verifies a detached armored signature next to each built
// artifact against the configured keyring. With no keyring configured the
// check is a no-op; projects that do not sign releases should not fail for
// it.
type signaturesCheck struct{}

func (signaturesCheck) ID() string   { return "signatures" }
func (signaturesCheck) Name() string { return "Signatures" }

func (signaturesCheck) Run(rc *Context) error {
	rc.Out.Section("🔍 Checking artifact signatures...")

	keyringPath := rc.Config.Signing.Keyring
	if keyringPath == "" {
		rc.Out.Info("No keyring configured, skipping signature verification")
		return nil
	}
	if !filepath.IsAbs(keyringPath) {
		keyringPath = filepath.Join(rc.Dir, keyringPath)
	}

	keyring, err := signing.LoadKeyring(keyringPath)
	if err != nil {
		rc.Out.Failure("Failed to load keyring: %v", err)
		return &models.CheckError{Type: models.ErrSignatureInvalid, Path: rc.Config.Signing.Keyring, Err: err}
	}

	distDir := filepath.Join(rc.Dir, rc.Config.DistDir)
	found, err := dist.Scan(distDir)
	if err != nil {
		if os.IsNotExist(err) {
			rc.Out.Info("No %s/ directory, skipping (run: python -m build)", rc.Config.DistDir)
			return nil
		}
		rc.Out.Failure("Failed to scan %s/: %v", rc.Config.DistDir, err)
		return &models.CheckError{Type: models.ErrArtifactInvalid, Path: rc.Config.DistDir, Err: err}
	}
	if len(found) == 0 {
		rc.Out.Info("No artifacts in %s/, skipping (run: python -m build)", rc.Config.DistDir)
		return nil
	}

	bad := 0
	for _, f := range found {
		base := filepath.Base(f.Path)
		sigPath := f.Path + ".asc"
		if _, err := os.Stat(sigPath); err != nil {
			rc.Out.Failure("Missing signature: %s.asc", base)
			bad++
			continue
		}
		if err := signing.VerifyDetached(keyring, f.Path, sigPath); err != nil {
			rc.Out.Failure("Invalid signature for %s: %v", base, err)
			bad++
		}
	}

	if bad > 0 {
		return &models.CheckError{
			Type: models.ErrSignatureInvalid,
			Path: rc.Config.DistDir,
			Err:  fmt.Errorf("%d of %d signatures failed verification", bad, len(found)),
		}
	}

	rc.Out.Success("All %d artifact signature(s) verify", len(found))
	return nil
}
