// Package encryption provides the snapshot encryptors: age with an X25519
// key pair whose private half is protected by a scrypt passphrase, and a
// reversible test encryptor.
package encryption

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"

	"genfs/internal/config"
	"genfs/internal/snapshot"
)

var (
	// ErrWrongPassphrase is returned by Unlock when the passphrase does not
	// open the private key.
	ErrWrongPassphrase = errors.New("wrong passphrase")

	// ErrAlreadyConfigured is returned by Setup when a key pair exists.
	ErrAlreadyConfigured = errors.New("encryption keys already exist")
)

// AgeEncryptor encrypts snapshots to a stored X25519 recipient.
type AgeEncryptor struct {
	publicKeyPath  string
	privateKeyPath string
}

var _ snapshot.Encryptor = (*AgeEncryptor)(nil)

// NewAgeEncryptor creates an AgeEncryptor for the configured key paths.
func NewAgeEncryptor(cfg config.EncryptionConfig) *AgeEncryptor {
	return &AgeEncryptor{
		publicKeyPath:  cfg.PublicKeyPath,
		privateKeyPath: cfg.PrivateKeyPath,
	}
}

// Setup generates a key pair. The public key is written in plaintext, the
// private key is sealed with passphrase. Existing keys are never replaced,
// since snapshots encrypted to them would become unreadable.
func (e *AgeEncryptor) Setup(passphrase string) error {
	if passphrase == "" {
		return fmt.Errorf("passphrase must not be empty")
	}
	if e.IsConfigured() {
		return ErrAlreadyConfigured
	}

	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return fmt.Errorf("generating key pair: %w", err)
	}

	var sealed bytes.Buffer
	if err := sealIdentity(&sealed, identity, passphrase); err != nil {
		return err
	}

	if err := writeKeyFile(e.privateKeyPath, sealed.Bytes(), 0600); err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}
	if err := writeKeyFile(e.publicKeyPath, []byte(identity.Recipient().String()+"\n"), 0644); err != nil {
		return fmt.Errorf("writing public key: %w", err)
	}
	return nil
}

// Encrypt streams r to w encrypted for the stored public key.
func (e *AgeEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	recipient, err := e.recipient()
	if err != nil {
		return err
	}

	enc, err := age.Encrypt(w, recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := io.Copy(enc, r); err != nil {
		return fmt.Errorf("encrypting data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}
	return nil
}

// Unlock opens the private key with passphrase.
func (e *AgeEncryptor) Unlock(passphrase string) (snapshot.DecryptionContext, error) {
	sealed, err := os.ReadFile(e.privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("reading private key: %w", err)
	}

	scrypt, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}

	plain, err := age.Decrypt(bytes.NewReader(sealed), scrypt)
	if err != nil {
		var noMatch *age.NoIdentityMatchError
		if errors.As(err, &noMatch) {
			return nil, ErrWrongPassphrase
		}
		return nil, fmt.Errorf("decrypting private key: %w", err)
	}

	identities, err := age.ParseIdentities(plain)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}
	if len(identities) == 0 {
		return nil, fmt.Errorf("private key file holds no identity")
	}
	return &AgeDecryptionContext{identity: identities[0]}, nil
}

// IsConfigured reports whether both key files exist.
func (e *AgeEncryptor) IsConfigured() bool {
	for _, p := range []string{e.publicKeyPath, e.privateKeyPath} {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}

func (e *AgeEncryptor) recipient() (age.Recipient, error) {
	data, err := os.ReadFile(e.publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("reading public key: %w", err)
	}
	recipient, err := age.ParseX25519Recipient(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	return recipient, nil
}

func sealIdentity(w io.Writer, identity *age.X25519Identity, passphrase string) error {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("creating scrypt recipient: %w", err)
	}
	enc, err := age.Encrypt(w, recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := io.WriteString(enc, identity.String()+"\n"); err != nil {
		return fmt.Errorf("sealing private key: %w", err)
	}
	return enc.Close()
}

// writeKeyFile writes data through a temp file in the same directory so a
// crash never leaves a truncated key behind.
func writeKeyFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".key-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// AgeDecryptionContext holds an unlocked identity.
type AgeDecryptionContext struct {
	identity age.Identity
}

var _ snapshot.DecryptionContext = (*AgeDecryptionContext)(nil)

// Decrypt streams age ciphertext from r to w as plaintext.
func (c *AgeDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	plain, err := age.Decrypt(r, c.identity)
	if err != nil {
		return fmt.Errorf("opening encrypted snapshot: %w", err)
	}
	if _, err := io.Copy(w, plain); err != nil {
		return fmt.Errorf("decrypting data: %w", err)
	}
	return nil
}
