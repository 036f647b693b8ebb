package crypto

import "errors"

var (
	// ErrIntegrity is returned when an authenticated payload cannot be
	// opened: wrong key, corrupted nonce/ciphertext or a malformed payload.
	ErrIntegrity = errors.New("payload integrity check failed")

	// ErrInvalidKeyLength is returned when a key is not 32 bytes long.
	ErrInvalidKeyLength = errors.New("invalid key length")
)
