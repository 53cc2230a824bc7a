package hashing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_HashAndVerify(t *testing.T) {
	hash, err := HashPassword("password1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	assert.True(t, VerifyPassword("password1", hash))
	assert.False(t, VerifyPassword("password2", hash))
}

func Test_HashesAreSalted(t *testing.T) {
	h1, err := HashPassword("password1")
	require.NoError(t, err)
	h2, err := HashPassword("password1")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword("password1", h1))
	assert.True(t, VerifyPassword("password1", h2))
}

func Test_VerifyRejectsGarbage(t *testing.T) {
	assert.False(t, VerifyPassword("password1", ""))
	assert.False(t, VerifyPassword("password1", "$argon2id$v=19$m=65536,t=1,p=8$bad"))
	assert.False(t, VerifyPassword("password1", "plaintext"))
}
