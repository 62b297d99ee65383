package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busline.mx/erp/internal/common"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=3,p=2$"))

	assert.True(t, VerifyPassword("s3cret!", hash))
	assert.False(t, VerifyPassword("s3cret", hash))
	assert.False(t, VerifyPassword("s3cret!", "not-a-hash"))

	other, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salt must differ")
}

func TestGeneratePassword(t *testing.T) {
	for i := 0; i < 50; i++ {
		p, err := GeneratePassword(8)
		require.NoError(t, err)
		assert.Len(t, p, 8)
		assert.True(t, strings.ContainsAny(p, passwordDigits), p)
		assert.True(t, strings.ContainsAny(p, passwordSymbols), p)
		assert.True(t, strings.ContainsAny(p, passwordLetters), p)
	}
}

func TestCheckNewPassword(t *testing.T) {
	assert.NoError(t, CheckNewPassword("abcdef", "abcdef"))
	assert.ErrorIs(t, CheckNewPassword("abcdef", "abcdeg"), common.ErrPasswordMismatch)
	assert.ErrorIs(t, CheckNewPassword("abc", "abc"), common.ErrPasswordTooShort)
}

func TestUsernameBase(t *testing.T) {
	cases := map[[2]string]string{
		{"José", "Núñez López"}:  "josnun",
		{"Ana", "Li"}:            "anali",
		{"María José", "Pérez"}:  "marper",
		{"O'Neil", "D'Angelo X"}: "onedan",
	}
	for in, want := range cases {
		assert.Equal(t, want, UsernameBase(in[0], in[1]), in)
	}
}

func TestGenerateUsername_Suffix(t *testing.T) {
	taken := map[string]bool{"josnun": true, "josnun1": true}
	name, err := GenerateUsername("José", "Núñez", func(s string) (bool, error) {
		return taken[s], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "josnun2", name)
}
