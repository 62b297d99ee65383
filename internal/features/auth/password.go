// Package auth: password.go hashes and verifies passwords with Argon2id
// and generates usernames and passwords for new accounts.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/argon2"
	"golang.org/x/text/unicode/norm"

	"busline.mx/erp/internal/common"
)

// Argon2id parameters, the same ones scripts/generate_hash.go uses.
const (
	argonMemory  uint32 = 64 * 1024
	argonTime    uint32 = 3
	argonThreads uint8  = 2
	argonKeyLen  uint32 = 32
	argonSaltLen        = 16

	// MinPasswordLength applies to passwords chosen by an operator.
	MinPasswordLength = 6
)

const (
	passwordLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	passwordDigits  = "0123456789"
	passwordSymbols = "!@#$%"
)

// HashPassword returns $argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>.
func HashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword checks password against an encoded Argon2id hash in
// constant time.
func VerifyPassword(password, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		log.Error("Malformed Argon2id hash")
		return false
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		log.WithError(err).Error("Failed to parse Argon2id parameters")
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		log.WithError(err).Error("Failed to decode salt")
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		log.WithError(err).Error("Failed to decode hash")
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expected)))
	return subtle.ConstantTimeCompare(computed, expected) == 1
}

// CheckNewPassword validates an operator-chosen password and its confirmation.
func CheckNewPassword(password, confirm string) error {
	if password != confirm {
		return common.ErrPasswordMismatch
	}
	if len([]rune(password)) < MinPasswordLength {
		return common.ErrPasswordTooShort
	}
	return nil
}

// GeneratePassword returns a random password of n characters drawn from
// letters, digits and !@#$%. It always contains at least one of each class.
func GeneratePassword(n int) (string, error) {
	if n < 3 {
		n = 3
	}
	all := passwordLetters + passwordDigits + passwordSymbols
	out := make([]byte, n)
	for i, set := range []string{passwordLetters, passwordDigits, passwordSymbols} {
		c, err := randomChar(set)
		if err != nil {
			return "", err
		}
		out[i] = c
	}
	for i := 3; i < n; i++ {
		c, err := randomChar(all)
		if err != nil {
			return "", err
		}
		out[i] = c
	}
	// Fisher-Yates so the fixed classes are not always first.
	for i := n - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		out[i], out[j.Int64()] = out[j.Int64()], out[i]
	}
	return string(out), nil
}

func randomChar(set string) (byte, error) {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, fmt.Errorf("random password: %w", err)
	}
	return set[idx.Int64()], nil
}

// UsernameBase builds the username stem: first three letters of the first
// name plus first three of the first surname, accents removed, lowercase.
//
//	UsernameBase("José", "Núñez López") → "josnun"
func UsernameBase(firstName, lastName string) string {
	first := asciiLetters(firstName)
	surname := ""
	if fields := strings.Fields(lastName); len(fields) > 0 {
		surname = asciiLetters(fields[0])
	}
	return prefix(first, 3) + prefix(surname, 3)
}

// GenerateUsername returns the first free name among base, base1, base2...
func GenerateUsername(firstName, lastName string, taken func(string) (bool, error)) (string, error) {
	base := UsernameBase(firstName, lastName)
	if base == "" {
		base = "user"
	}
	candidate := base
	for i := 1; ; i++ {
		exists, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}

func asciiLetters(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
