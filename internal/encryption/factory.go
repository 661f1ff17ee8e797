package encryption

import (
	"fmt"

	"genfs/internal/config"
	"genfs/internal/snapshot"
)

// NewEncryptorFromConfig returns the configured encryptor. Type "none"
// yields a nil encryptor: snapshots are stored in plaintext.
func NewEncryptorFromConfig(cfg config.EncryptionConfig) (snapshot.Encryptor, error) {
	switch cfg.Type {
	case "age", "":
		if cfg.PublicKeyPath == "" || cfg.PrivateKeyPath == "" {
			return nil, fmt.Errorf("age encryption requires public_key_path and private_key_path")
		}
		return NewAgeEncryptor(cfg), nil
	case "test":
		return NewTestEncryptor(), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown encryption type: %q", cfg.Type)
	}
}
