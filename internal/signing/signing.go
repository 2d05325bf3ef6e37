package signing

import (
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// LoadKeyring reads a public keyring from a file, in armored or binary
// format. This is the keyring artifacts signatures are checked against, the
// same keys maintainers publish for `gpg --verify`.
func LoadKeyring(path string) (openpgp.EntityList, error) {
	if path == "" {
		return nil, fmt.Errorf("keyring path is empty")
	}

	keyFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	defer keyFile.Close()

	// Try to parse as armored keyring first
	entityList, err := openpgp.ReadArmoredKeyRing(keyFile)
	if err != nil {
		// Try as binary keyring
		keyFile.Seek(0, 0)
		entityList, err = openpgp.ReadKeyRing(keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read keyring: %w", err)
		}
	}

	if len(entityList) == 0 {
		return nil, fmt.Errorf("no keys found in keyring")
	}

	return entityList, nil
}

// VerifyDetached checks an armored detached signature (the .asc files twine
// uploads alongside artifacts) against the artifact it covers.
func VerifyDetached(keyring openpgp.EntityList, artifactPath, sigPath string) error {
	artifact, err := os.Open(artifactPath)
	if err != nil {
		return err
	}
	defer artifact.Close()

	sig, err := os.Open(sigPath)
	if err != nil {
		return err
	}
	defer sig.Close()

	if _, err := openpgp.CheckArmoredDetachedSignature(keyring, artifact, sig, nil); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}
