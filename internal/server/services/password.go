package services

import (
	"crypto/subtle"
	"unicode/utf8"

	"github.com/hifi-israel/sikacare/internal/common"
	"github.com/hifi-israel/sikacare/internal/validation"
	"golang.org/x/crypto/argon2"
)

// argon2id parameters. Changing them invalidates stored hashes.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

func hashPassword(password string) (hash, salt []byte) {
	salt = common.GenerateRandByteArray(saltLen)
	return derive(password, salt), salt
}

func derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

func checkPassword(password string, hash, salt []byte) bool {
	if len(hash) == 0 || len(salt) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(derive(password, salt), hash) == 1
}

// checkPasswordStrength enforces the server-side minimum only. The richer
// rules are checked by clients while the user types.
func checkPasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < validation.MinPasswordLength {
		return common.ErrWeakPassword
	}
	return nil
}
