package auth

import (
	"strings"

	"habit/config"
	"habit/internal/domain/service"
	"habit/internal/errors"
)

// policyHasher hashes under the configured algorithm and verifies any supported format.
type policyHasher struct {
	current service.PasswordHasher
	bcrypt  *bcryptHasher
	argon2  *argon2idHasher
}

// NewPasswordHasher builds the hasher for the configured hash policy.
func NewPasswordHasher(cfg *config.AuthConfig) (service.PasswordHasher, error) {
	h := &policyHasher{
		bcrypt: newBcryptHasher(cfg.BcryptCost),
		argon2: newArgon2idHasher(Argon2ParamsFromConfig(cfg.Argon2)),
	}

	switch cfg.Algorithm {
	case config.AlgorithmBcrypt, "":
		h.current = h.bcrypt
	case config.AlgorithmArgon2id:
		h.current = h.argon2
	default:
		return nil, errors.Errorf("unsupported hash algorithm %q", cfg.Algorithm)
	}

	return h, nil
}

func (h *policyHasher) Hash(password string) (string, error) {
	return h.current.Hash(password)
}

// Verify dispatches on the hash prefix so hashes from a previous policy keep verifying.
func (h *policyHasher) Verify(password, hash string) bool {
	switch algorithmOf(hash) {
	case config.AlgorithmBcrypt:
		return h.bcrypt.Verify(password, hash)
	case config.AlgorithmArgon2id:
		return h.argon2.Verify(password, hash)
	default:
		return false
	}
}

func (h *policyHasher) NeedsUpgrade(hash string) bool {
	return h.current.NeedsUpgrade(hash)
}

// algorithmOf detects the algorithm from the hash prefix, or "" when unrecognized.
func algorithmOf(hash string) string {
	switch {
	case isBcryptHash(hash):
		return config.AlgorithmBcrypt
	case strings.HasPrefix(hash, argon2idPrefix):
		return config.AlgorithmArgon2id
	default:
		return ""
	}
}
