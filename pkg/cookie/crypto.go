package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

func mac(secret string, value []byte) []byte {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(value)
	return h.Sum(nil)
}

// sign encodes value as base64(value)|base64(hmac).
func (m *Manager) sign(value string) string {
	sig := mac(m.secrets[0], []byte(value))
	return base64.RawURLEncoding.EncodeToString([]byte(value)) + "|" + base64.RawURLEncoding.EncodeToString(sig)
}

func (m *Manager) verify(signed string) (string, error) {
	encodedValue, encodedSig, ok := strings.Cut(signed, "|")
	if !ok {
		return "", ErrInvalidFormat
	}

	value, err := base64.RawURLEncoding.DecodeString(encodedValue)
	if err != nil {
		return "", ErrInvalidFormat
	}
	sig, err := base64.RawURLEncoding.DecodeString(encodedSig)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, secret := range m.secrets {
		if hmac.Equal(sig, mac(secret, value)) {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}

func gcmFor(secret string) (cipher.AEAD, error) {
	block, err := aes.NewCipher([]byte(secret[:32]))
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// encrypt seals plaintext with AES-256-GCM; the nonce is prepended.
func (m *Manager) encrypt(plaintext []byte) (string, error) {
	gcm, err := gcmFor(m.secrets[0])
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(gcm.Seal(nonce, nonce, plaintext, nil)), nil
}

func (m *Manager) decrypt(encoded string) ([]byte, error) {
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	for _, secret := range m.secrets {
		gcm, err := gcmFor(secret)
		if err != nil || len(data) < gcm.NonceSize() {
			continue
		}
		nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
		if plaintext, err := gcm.Open(nil, nonce, ciphertext, nil); err == nil {
			return plaintext, nil
		}
	}
	return nil, ErrDecryptionFailed
}
