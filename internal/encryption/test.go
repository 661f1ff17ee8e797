package encryption

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"genfs/internal/snapshot"
)

var testHeader = []byte("GENFSENC")

// TestEncryptor prepends a fixed header on Encrypt and strips it on
// Decrypt. Output differs from plaintext without any key material.
type TestEncryptor struct {
	// Passphrase, when set, is the only passphrase Unlock accepts.
	Passphrase string
}

var _ snapshot.Encryptor = (*TestEncryptor)(nil)

// NewTestEncryptor creates a TestEncryptor that accepts any passphrase.
func NewTestEncryptor() *TestEncryptor {
	return &TestEncryptor{}
}

func (e *TestEncryptor) Setup(passphrase string) error {
	e.Passphrase = passphrase
	return nil
}

func (e *TestEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	if _, err := w.Write(testHeader); err != nil {
		return fmt.Errorf("writing test header: %w", err)
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}

func (e *TestEncryptor) Unlock(passphrase string) (snapshot.DecryptionContext, error) {
	if e.Passphrase != "" && passphrase != e.Passphrase {
		return nil, ErrWrongPassphrase
	}
	return testDecryptionContext{}, nil
}

func (e *TestEncryptor) IsConfigured() bool {
	return true
}

type testDecryptionContext struct{}

func (testDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	header, err := br.Peek(len(testHeader))
	if err != nil || !bytes.Equal(header, testHeader) {
		return fmt.Errorf("invalid test encryption header")
	}
	if _, err := br.Discard(len(testHeader)); err != nil {
		return err
	}
	if _, err := io.Copy(w, br); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}
