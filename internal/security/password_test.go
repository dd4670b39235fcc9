package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Smaller parameters keep the test fast; the verifier reads the
// parameters back out of the encoded hash.
var testParams = Argon2Params{
	Time:    1,
	Memory:  16 * 1024,
	Threads: 1,
	KeyLen:  32,
	SaltLen: 16,
}

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPasswordWithParams("correct horse battery staple", testParams)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(hash), "$argon2id$v=19$"))

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	h1, err := HashPasswordWithParams("same input", testParams)
	require.NoError(t, err)
	h2, err := HashPasswordWithParams("same input", testParams)
	require.NoError(t, err)
	assert.NotEqual(t, string(h1), string(h2))
}

func TestVerifyMalformedHash(t *testing.T) {
	for _, bad := range []string{
		"",
		"plaintext",
		"$bcrypt$v=19$t=1,m=16,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$t=1,m=16,p=1$c2FsdA$aGFzaA",
	} {
		_, err := VerifyPassword("x", []byte(bad))
		assert.ErrorIs(t, err, ErrMalformedHash, "hash %q", bad)
	}
}

func TestNewSessionToken(t *testing.T) {
	tok, err := NewSessionToken()
	require.NoError(t, err)
	assert.Len(t, tok, 64) // 32 bytes hex encoded

	other, err := NewSessionToken()
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}
