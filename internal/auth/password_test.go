package auth

import (
	"strings"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher(t *testing.T) {
	testCases := []struct {
		name        string
		algorithm   string
		cost        int
		expected    PasswordHasher
		expectedErr bool
	}{
		{name: "default", algorithm: "", expected: BcryptHasher{Cost: bcrypt.DefaultCost}},
		{name: "bcrypt with cost", algorithm: "bcrypt", cost: bcrypt.MinCost, expected: BcryptHasher{Cost: bcrypt.MinCost}},
		{name: "bcrypt upper case", algorithm: "BCRYPT", cost: 12, expected: BcryptHasher{Cost: 12}},
		{name: "bcrypt cost too high", algorithm: "bcrypt", cost: 99, expectedErr: true},
		{name: "argon2id", algorithm: "argon2id", expected: Argon2idHasher{Params: argon2id.DefaultParams}},
		{name: "unknown", algorithm: "md5", expectedErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, err := NewPasswordHasher(tc.algorithm, tc.cost)
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, h)
		})
	}

	_, err := NewPasswordHasher("md5", 0)
	assert.ErrorIs(t, err, ErrUnknownHashAlgorithm)
}

func TestPasswordHashers(t *testing.T) {
	hashers := map[string]PasswordHasher{
		"bcrypt":   BcryptHasher{Cost: bcrypt.MinCost},
		"argon2id": Argon2idHasher{},
	}

	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			hash, err := h.Encode("password")
			require.NoError(t, err)
			assert.NotEqual(t, "password", hash)

			again, err := h.Encode("password")
			require.NoError(t, err)
			assert.NotEqual(t, hash, again, "hashes must be salted")

			assert.True(t, h.Matches("password", hash))
			assert.False(t, h.Matches("Password", hash))
			assert.False(t, h.Matches("", hash))
			assert.False(t, h.Matches("password", "not-a-hash"))
		})
	}
}

func TestPasswordHashersAcceptEachOther(t *testing.T) {
	bc := BcryptHasher{Cost: bcrypt.MinCost}
	ar := Argon2idHasher{}

	bcHash, err := bc.Encode("secret")
	require.NoError(t, err)

	arHash, err := ar.Encode("secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(arHash, "$argon2id$"))

	assert.True(t, ar.Matches("secret", bcHash))
	assert.True(t, bc.Matches("secret", arHash))
}
