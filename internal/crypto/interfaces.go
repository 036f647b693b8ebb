package crypto

import "github.com/MKhiriev/go-todo-keeper/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService holds all cryptography of the private vault. It knows
// nothing about storage, sessions or the UI.
//
// Scheme:
//
//	Salt        = GenerateSalt()                    (once per password)
//	Key         = DeriveKey(password, Salt)         (PBKDF2-HMAC-SHA256)
//	Fingerprint = Fingerprint(password)             (HMAC-SHA256, never key material)
//	Payload     = EncryptTasks(Key, tasks)          (AES-256-GCM, fresh nonce)
type KeyChainService interface {
	// GenerateSalt returns 16 random bytes. The salt is not secret; it is
	// stored next to the payload and replaced on every password change.
	GenerateSalt() ([]byte, error)

	// DeriveKey derives the 256-bit vault key from password and salt.
	// The result is deterministic for the same inputs.
	DeriveKey(password string, salt []byte) []byte

	// Fingerprint returns the hex verifier of password. It is independent
	// of the derived key and is used only for equality checks.
	Fingerprint(password string) string

	// VerifyFingerprint recomputes the fingerprint of password and compares
	// it with fingerprint in constant time.
	VerifyFingerprint(password, fingerprint string) bool

	// EncryptTasks serialises tasks to JSON and seals them with key under a
	// fresh random nonce.
	EncryptTasks(key []byte, tasks []models.Task) (models.EncryptedPayload, error)

	// DecryptTasks opens payload with key. A wrong key or tampered data
	// returns an error wrapping [ErrIntegrity]; garbage is never returned.
	DecryptTasks(key []byte, payload models.EncryptedPayload) ([]models.Task, error)
}
