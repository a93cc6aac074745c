// Package cryptox seals byte blobs with AES-256-GCM under a key derived from
// a passphrase with Argon2id.
package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/greenkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 16
	KeySize  = 32
)

// magic prefixes every sealed blob so that plaintext written by an older,
// unencrypted setup is recognized instead of failing authentication.
var magic = []byte("GKE1")

var (
	ErrNotSealed  = errors.New("data is not a sealed blob")
	ErrDecryption = errors.New("decryption failed")
)

// DeriveMasterKey stretches password into a 32-byte key.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, KeySize)
}

// Seal encrypts plaintext with a key derived from passphrase and a fresh
// random salt. Layout: magic | salt | nonce | ciphertext+tag.
func Seal(plaintext, passphrase []byte) ([]byte, error) {
	salt := common.GenerateRandByteArray(SaltSize)
	key := DeriveMasterKey(passphrase, salt)
	defer common.WipeByteArray(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())

	header := make([]byte, 0, len(magic)+len(salt))
	header = append(header, magic...)
	header = append(header, salt...)

	out := make([]byte, 0, len(header)+len(nonce)+len(plaintext)+aesgcm.Overhead())
	out = append(out, header...)
	out = append(out, nonce...)
	// magic and salt are authenticated as additional data.
	return aesgcm.Seal(out, nonce, plaintext, header), nil
}

// Open reverses Seal.
func Open(sealed, passphrase []byte) ([]byte, error) {
	if !IsSealed(sealed) {
		return nil, ErrNotSealed
	}
	header := sealed[:len(magic)+SaltSize]
	salt := header[len(magic):]

	key := DeriveMasterKey(passphrase, salt)
	defer common.WipeByteArray(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	rest := sealed[len(header):]
	if len(rest) < aesgcm.NonceSize()+aesgcm.Overhead() {
		return nil, fmt.Errorf("%w: sealed blob too short", ErrDecryption)
	}
	nonce, ciphertext := rest[:aesgcm.NonceSize()], rest[aesgcm.NonceSize():]

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, header)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryption, err)
	}
	return plaintext, nil
}

// IsSealed reports whether data starts with the sealed-blob header.
func IsSealed(data []byte) bool {
	return len(data) >= len(magic)+SaltSize && bytes.Equal(data[:len(magic)], magic)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
