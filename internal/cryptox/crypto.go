// Package cryptox seals small JSON values with AES-GCM. The client keeps the
// persisted session sealed under a per-device key.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hifi-israel/sikacare/internal/common"
	"github.com/hifi-israel/sikacare/internal/filex"
)

// KeySize selects AES-256.
const KeySize = 32

var ErrInvalidKey = errors.New("invalid device key")

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal serializes v to JSON and encrypts it with AES-GCM under key. A fresh
// random nonce is generated for every call and returned next to the
// ciphertext.
func Seal(v any, key []byte) (ciphertext, nonce []byte, err error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce = common.GenerateRandByteArray(aesgcm.NonceSize())
	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)

	return ciphertext, nonce, nil
}

// Open reverses Seal and unmarshals the plaintext into v.
func Open(ciphertext, nonce, key []byte, v any) error {
	aesgcm, err := newGCM(key)
	if err != nil {
		return err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return err
	}

	return json.Unmarshal(plaintext, v)
}

// LoadOrCreateKey reads the hex encoded device key at path. When the file does
// not exist a new random key is written there with owner-only permissions.
func LoadOrCreateKey(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		key, err := hex.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil || len(key) != KeySize {
			return nil, fmt.Errorf("%w: %s", ErrInvalidKey, path)
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	key := common.GenerateRandByteArray(KeySize)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create device key: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(hex.EncodeToString(key)); err != nil {
		return nil, fmt.Errorf("write device key: %w", err)
	}
	return key, nil
}
