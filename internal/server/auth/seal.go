package auth

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/dmitrijs2005/jablog/internal/common"
	"golang.org/x/crypto/chacha20poly1305"
)

// seal encrypts plaintext with XChaCha20-Poly1305 under key and returns
// base64url(nonce || ciphertext).
func seal(key, plaintext []byte) (string, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(aead.Seal(nonce, nonce, plaintext, nil)), nil
}

// unseal reverses seal. Every failure is reported as common.ErrInvalidToken.
func unseal(key []byte, sealed string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(raw) < aead.NonceSize()+aead.Overhead() {
		return nil, common.ErrInvalidToken
	}
	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	return plaintext, nil
}
