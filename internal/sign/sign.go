// Package sign produces and checks armored OpenPGP detached signatures for
// generated reports, using ProtonMail's maintained fork of x/crypto/openpgp.
package sign

import (
	"errors"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// PassphraseEnv names the environment variable holding the signing key
// passphrase.
const PassphraseEnv = "SECRISK_SIGN_PASSPHRASE"

// SignatureSuffix is appended to a report path to name its signature.
const SignatureSuffix = ".asc"

// LoadSigner reads an armored private key file and returns the first entity
// holding private key material, decrypted with passphrase when needed.
func LoadSigner(keyPath string, passphrase []byte) (*openpgp.Entity, error) {
	f, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file: %w", err)
	}
	defer f.Close()

	entities, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}

	for _, e := range entities {
		if e.PrivateKey == nil {
			continue
		}
		if err := decrypt(e, passphrase); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, errors.New("no private key found in key file")
}

func decrypt(e *openpgp.Entity, passphrase []byte) error {
	if e.PrivateKey.Encrypted {
		if len(passphrase) == 0 {
			return fmt.Errorf("private key is encrypted, set %s", PassphraseEnv)
		}
		if err := e.PrivateKey.Decrypt(passphrase); err != nil {
			return fmt.Errorf("decrypting private key: %w", err)
		}
	}
	for _, sub := range e.Subkeys {
		if sub.PrivateKey == nil || !sub.PrivateKey.Encrypted {
			continue
		}
		if err := sub.PrivateKey.Decrypt(passphrase); err != nil {
			return fmt.Errorf("decrypting subkey: %w", err)
		}
	}
	return nil
}

// DetachSignFile writes an armored detached signature of the file at path to
// path+".asc" and returns the signature path.
func DetachSignFile(path, keyPath string, passphrase []byte) (string, error) {
	signer, err := LoadSigner(keyPath, passphrase)
	if err != nil {
		return "", err
	}

	data, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open data file: %w", err)
	}
	defer data.Close()

	sigPath := path + SignatureSuffix
	sig, err := os.Create(sigPath)
	if err != nil {
		return "", fmt.Errorf("creating signature file: %w", err)
	}
	defer sig.Close()

	if err := openpgp.ArmoredDetachSign(sig, signer, data, nil); err != nil {
		return "", fmt.Errorf("signing %s: %w", path, err)
	}
	if err := sig.Close(); err != nil {
		return "", fmt.Errorf("writing signature file: %w", err)
	}
	return sigPath, nil
}

// VerifyFile checks an armored detached signature of the file at path against
// the armored public keys in keyPath.
func VerifyFile(path, sigPath, keyPath string) error {
	keyFile, err := os.Open(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}
	defer keyFile.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(keyFile)
	if err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}

	dataFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	defer dataFile.Close()

	sigFile, err := os.Open(sigPath)
	if err != nil {
		return fmt.Errorf("failed to open signature file: %w", err)
	}
	defer sigFile.Close()

	if _, err := openpgp.CheckArmoredDetachedSignature(keyring, dataFile, sigFile, nil); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}
