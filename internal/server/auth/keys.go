package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	signingInfo = "jablog session signing v1"
	sealingInfo = "jablog session sealing v1"
)

// MinSecretLen is the shortest secret DeriveKeys accepts.
const MinSecretLen = 16

// Keys holds the two subkeys derived from the configured secret. The zero
// value is unusable.
type Keys struct {
	signing []byte
	sealing []byte
}

// DeriveKeys expands secret into independent signing and sealing keys with
// HKDF-SHA256.
func DeriveKeys(secret []byte) (Keys, error) {
	if len(secret) < MinSecretLen {
		return Keys{}, errors.New("secret key is too short")
	}
	signing, err := expand(secret, signingInfo, sha256.Size)
	if err != nil {
		return Keys{}, err
	}
	sealing, err := expand(secret, sealingInfo, chacha20poly1305.KeySize)
	if err != nil {
		return Keys{}, err
	}
	return Keys{signing: signing, sealing: sealing}, nil
}

func expand(secret []byte, info string, n int) ([]byte, error) {
	key := make([]byte, n)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("hkdf %q: %w", info, err)
	}
	return key, nil
}
