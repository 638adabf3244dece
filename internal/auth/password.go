package auth

import (
	"strings"

	"github.com/alexedwards/argon2id"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	// HashBcrypt selects bcrypt password hashing.
	HashBcrypt = "bcrypt"
	// HashArgon2id selects argon2id password hashing.
	HashArgon2id = "argon2id"

	argon2idPrefix = "$argon2id$"
)

// PasswordHasher encodes passwords and checks plaintext against stored hashes.
type PasswordHasher interface {
	Encode(plaintext string) (string, error)
	Matches(plaintext, hash string) bool
}

// NewPasswordHasher returns the hasher for algorithm. An empty algorithm selects bcrypt.
// A bcryptCost of zero selects bcrypt.DefaultCost.
func NewPasswordHasher(algorithm string, bcryptCost int) (PasswordHasher, error) {
	switch strings.ToLower(algorithm) {
	case "", HashBcrypt:
		if bcryptCost == 0 {
			bcryptCost = bcrypt.DefaultCost
		}

		if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
			return nil, errors.Errorf("bcrypt cost %d out of range [%d,%d]", bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
		}

		return BcryptHasher{Cost: bcryptCost}, nil
	case HashArgon2id:
		return Argon2idHasher{Params: argon2id.DefaultParams}, nil
	default:
		return nil, errors.Wrap(ErrUnknownHashAlgorithm, algorithm)
	}
}

// BcryptHasher hashes with bcrypt. Argon2id hashes are still accepted by Matches.
type BcryptHasher struct {
	Cost int
}

// Encode hashes plaintext with bcrypt.
func (h BcryptHasher) Encode(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.Cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt hash")
	}

	return string(hash), nil
}

// Matches reports whether plaintext matches hash.
func (h BcryptHasher) Matches(plaintext, hash string) bool {
	return matches(plaintext, hash)
}

// Argon2idHasher hashes with argon2id. Bcrypt hashes are still accepted by Matches.
type Argon2idHasher struct {
	Params *argon2id.Params
}

// Encode hashes plaintext with argon2id.
func (h Argon2idHasher) Encode(plaintext string) (string, error) {
	params := h.Params
	if params == nil {
		params = argon2id.DefaultParams
	}

	hash, err := argon2id.CreateHash(plaintext, params)
	if err != nil {
		return "", errors.Wrap(err, "argon2id hash")
	}

	return hash, nil
}

// Matches reports whether plaintext matches hash.
func (h Argon2idHasher) Matches(plaintext, hash string) bool {
	return matches(plaintext, hash)
}

// matches dispatches on the hash format.
func matches(plaintext, hash string) bool {
	if strings.HasPrefix(hash, argon2idPrefix) {
		ok, err := argon2id.ComparePasswordAndHash(plaintext, hash)
		if err != nil {
			log.Error().Err(err).Msg("failed to verify argon2id password")
			return false
		}

		return ok
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		log.Error().Err(err).Msg("failed to verify bcrypt password")
	}

	return err == nil
}
