// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/models"
	"github.com/awnumar/memguard"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of a key-derivation salt in bytes.
	SaltSize = 16

	// KeySize is the length of the derived AES-256 key in bytes.
	KeySize = 32

	// NonceSize is the AES-GCM nonce length in bytes.
	NonceSize = 12

	// DefaultIterations is the PBKDF2 work factor.
	DefaultIterations = 150_000

	// DefaultFingerprintKey domain-separates fingerprints from any other
	// SHA-256 use when no key is configured.
	DefaultFingerprintKey = "go-todo-keeper/privacy-fingerprint/v1"
)

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	// iterations is the PBKDF2 iteration count. It is fixed in production;
	// tests may lower it through [WithIterations].
	iterations int

	// fingerprintKey is the HMAC key of the credential hasher.
	fingerprintKey string

	random io.Reader
}

// Option customises a [KeyChainService].
type Option func(*keyChainService)

// WithIterations overrides the PBKDF2 iteration count. Values below 1 are
// ignored.
func WithIterations(n int) Option {
	return func(k *keyChainService) {
		if n > 0 {
			k.iterations = n
		}
	}
}

// WithFingerprintKey sets the HMAC key used for fingerprints. An empty key
// keeps [DefaultFingerprintKey].
func WithFingerprintKey(key string) Option {
	return func(k *keyChainService) {
		if key != "" {
			k.fingerprintKey = key
		}
	}
}

// WithRandom replaces the randomness source used for salts and nonces.
func WithRandom(r io.Reader) Option {
	return func(k *keyChainService) {
		if r != nil {
			k.random = r
		}
	}
}

// NewKeyChainService constructs a [KeyChainService] using PBKDF2-HMAC-SHA256
// with [DefaultIterations] and AES-256-GCM.
func NewKeyChainService(opts ...Option) KeyChainService {
	k := &keyChainService{
		iterations:     DefaultIterations,
		fingerprintKey: DefaultFingerprintKey,
		random:         rand.Reader,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// GenerateSalt implements [KeyChainService].
func (k *keyChainService) GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(k.random, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// DeriveKey implements [KeyChainService].
func (k *keyChainService) DeriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, k.iterations, KeySize, sha256.New)
}

// Fingerprint implements [KeyChainService]. The verifier is
// hex(HMAC-SHA256(fingerprintKey, password)).
func (k *keyChainService) Fingerprint(password string) string {
	return utils.HashString(password, k.fingerprintKey)
}

// VerifyFingerprint implements [KeyChainService].
func (k *keyChainService) VerifyFingerprint(password, fingerprint string) bool {
	if fingerprint == "" {
		return false
	}
	got := k.Fingerprint(password)
	return subtle.ConstantTimeCompare([]byte(got), []byte(fingerprint)) == 1
}

// EncryptTasks implements [KeyChainService]. A nil task list is stored as
// an empty JSON array so it round-trips to an empty, non-nil slice.
func (k *keyChainService) EncryptTasks(key []byte, tasks []models.Task) (models.EncryptedPayload, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}

	// 1. Serialize to JSON
	plaintext, err := json.Marshal(tasks)
	if err != nil {
		return models.EncryptedPayload{}, fmt.Errorf("marshal tasks: %w", err)
	}
	defer memguard.WipeBytes(plaintext)

	// 2. Build AES-GCM cipher from key
	gcm, err := newGCM(key)
	if err != nil {
		return models.EncryptedPayload{}, err
	}

	// 3. Generate a random nonce
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(k.random, nonce); err != nil {
		return models.EncryptedPayload{}, fmt.Errorf("generate nonce: %w", err)
	}

	// 4. Seal; the tag is appended to the ciphertext
	return models.EncryptedPayload{
		Nonce:      nonce,
		Ciphertext: gcm.Seal(nil, nonce, plaintext, nil),
	}, nil
}

// DecryptTasks implements [KeyChainService].
func (k *keyChainService) DecryptTasks(key []byte, payload models.EncryptedPayload) ([]models.Task, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(payload.Nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("%w: nonce length %d", ErrIntegrity, len(payload.Nonce))
	}
	if len(payload.Ciphertext) < gcm.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrIntegrity)
	}

	// Decrypt and verify auth tag. An error here means a wrong key or a
	// modified payload.
	plaintext, err := gcm.Open(nil, payload.Nonce, payload.Ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIntegrity, err)
	}
	defer memguard.WipeBytes(plaintext)

	tasks := []models.Task{}
	if err := json.Unmarshal(plaintext, &tasks); err != nil {
		return nil, fmt.Errorf("%w: unmarshal tasks: %v", ErrIntegrity, err)
	}
	return tasks, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKeyLength, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
