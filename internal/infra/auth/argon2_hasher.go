package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"habit/config"
	domainerrors "habit/internal/domain/errors"
	"habit/internal/domain/service"
	"habit/internal/errors"
)

const argon2idPrefix = "$argon2id$"

var errMalformedArgon2Hash = errors.New("malformed argon2id hash")

// Argon2Params are the argon2id cost parameters.
type Argon2Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// Argon2ParamsFromConfig converts the config section into Argon2Params.
func Argon2ParamsFromConfig(cfg config.Argon2Config) Argon2Params {
	return Argon2Params{
		Memory:      cfg.Memory,
		Iterations:  cfg.Iterations,
		Parallelism: cfg.Parallelism,
		SaltLength:  cfg.SaltLength,
		KeyLength:   cfg.KeyLength,
	}
}

type argon2idHasher struct {
	params Argon2Params
}

// NewArgon2idHasher creates a PasswordHasher producing PHC-formatted argon2id hashes.
func NewArgon2idHasher(params Argon2Params) service.PasswordHasher {
	return newArgon2idHasher(params)
}

func newArgon2idHasher(params Argon2Params) *argon2idHasher {
	return &argon2idHasher{params: params}
}

// Hash returns $argon2id$v=19$m=<memory>,t=<iterations>,p=<parallelism>$<salt>$<digest>.
func (h *argon2idHasher) Hash(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.WithStack(domainerrors.ErrInvalidInput)
	}

	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "generate argon2 salt")
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2idPrefix,
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify recomputes the digest with the parameters embedded in hash.
func (h *argon2idHasher) Verify(password, hash string) bool {
	if password == "" {
		return false
	}

	decoded, err := decodeArgon2idHash(hash)
	if err != nil {
		return false
	}

	key := argon2.IDKey([]byte(password), decoded.salt, decoded.params.Iterations, decoded.params.Memory,
		decoded.params.Parallelism, decoded.params.KeyLength)

	return subtle.ConstantTimeCompare(key, decoded.key) == 1
}

// NeedsUpgrade reports whether hash was produced with other parameters than the configured ones.
func (h *argon2idHasher) NeedsUpgrade(hash string) bool {
	decoded, err := decodeArgon2idHash(hash)
	if err != nil {
		return true
	}

	return decoded.params != h.params
}

type argon2idHash struct {
	params Argon2Params
	salt   []byte
	key    []byte
}

func decodeArgon2idHash(hash string) (*argon2idHash, error) {
	if !strings.HasPrefix(hash, argon2idPrefix) {
		return nil, errMalformedArgon2Hash
	}

	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		return nil, errMalformedArgon2Hash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, errMalformedArgon2Hash
	}

	decoded := &argon2idHash{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d",
		&decoded.params.Memory, &decoded.params.Iterations, &decoded.params.Parallelism); err != nil {
		return nil, errMalformedArgon2Hash
	}
	if decoded.params.Iterations == 0 || decoded.params.Parallelism == 0 {
		return nil, errMalformedArgon2Hash
	}

	var err error
	if decoded.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(decoded.salt) == 0 {
		return nil, errMalformedArgon2Hash
	}
	if decoded.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(decoded.key) == 0 {
		return nil, errMalformedArgon2Hash
	}

	decoded.params.SaltLength = uint32(len(decoded.salt))
	decoded.params.KeyLength = uint32(len(decoded.key))

	return decoded, nil
}
