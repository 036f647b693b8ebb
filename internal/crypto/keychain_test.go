package crypto

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/MKhiriev/go-todo-keeper/models"
)

// fastKeyChain lowers the PBKDF2 work factor so tests stay quick.
func fastKeyChain(opts ...Option) KeyChainService {
	return NewKeyChainService(append([]Option{WithIterations(1000)}, opts...)...)
}

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: "0190a1b2-0000-7000-8000-000000000001", Text: "buy milk", CreatedAt: 1700000000000, Color: models.DefaultTaskColor},
		{ID: "0190a1b2-0000-7000-8000-000000000002", Text: "call mom", Completed: true, CreatedAt: 1700000000500, Color: "red"},
	}
}

func TestGenerateSalt_LengthAndRandomness(t *testing.T) {
	svc := fastKeyChain()

	s1, err := svc.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}
	s2, err := svc.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}

	if len(s1) != SaltSize || len(s2) != SaltSize {
		t.Fatalf("salt lengths = %d/%d, want %d", len(s1), len(s2), SaltSize)
	}
	if bytes.Equal(s1, s2) {
		t.Fatalf("expected salts to differ, but they are equal")
	}
}

func TestGenerateSalt_RandomFailure(t *testing.T) {
	svc := fastKeyChain(WithRandom(bytes.NewReader(nil)))

	if _, err := svc.GenerateSalt(); err == nil {
		t.Fatalf("expected error when random source is exhausted")
	}
}

func TestDeriveKey_DeterministicForSameInputs(t *testing.T) {
	// default work factor on purpose: the production parameters must stay deterministic
	svc := NewKeyChainService()

	salt := bytes.Repeat([]byte{0xAB}, SaltSize)
	k1 := svc.DeriveKey("abcd", salt)
	k2 := svc.DeriveKey("abcd", salt)

	if len(k1) != KeySize {
		t.Fatalf("key length = %d, want %d", len(k1), KeySize)
	}
	if !bytes.Equal(k1, k2) {
		t.Fatalf("expected keys to match for same password+salt")
	}
}

func TestDeriveKey_DifferentSaltsProduceDifferentKeys(t *testing.T) {
	svc := fastKeyChain()

	for i := 0; i < 20; i++ {
		s1 := make([]byte, SaltSize)
		s2 := make([]byte, SaltSize)
		_, _ = rand.Read(s1)
		_, _ = rand.Read(s2)
		if bytes.Equal(s1, s2) {
			continue
		}

		if bytes.Equal(svc.DeriveKey("same password", s1), svc.DeriveKey("same password", s2)) {
			t.Fatalf("iteration %d: different salts produced the same key", i)
		}
	}
}

func TestDeriveKey_IsNotTheFingerprint(t *testing.T) {
	svc := fastKeyChain()
	salt := bytes.Repeat([]byte{0x01}, SaltSize)

	key := svc.DeriveKey("abcd", salt)
	fp := svc.Fingerprint("abcd")

	if bytes.Contains([]byte(fp), key) {
		t.Fatalf("fingerprint must not contain key material")
	}
}

func TestFingerprint_DeterministicAndVerifiable(t *testing.T) {
	svc := fastKeyChain()

	f1 := svc.Fingerprint("abcd")
	f2 := svc.Fingerprint("abcd")
	if f1 != f2 {
		t.Fatalf("fingerprint is not deterministic: %q vs %q", f1, f2)
	}
	if len(f1) != 64 {
		t.Fatalf("fingerprint length = %d, want 64 hex chars", len(f1))
	}
	if !svc.VerifyFingerprint("abcd", f1) {
		t.Fatalf("expected matching password to verify")
	}
	if svc.VerifyFingerprint("abce", f1) {
		t.Fatalf("expected wrong password to be rejected")
	}
	if svc.VerifyFingerprint("abcd", "") {
		t.Fatalf("expected empty fingerprint to be rejected")
	}
}

func TestFingerprint_KeyedByConfiguration(t *testing.T) {
	a := fastKeyChain(WithFingerprintKey("key-a"))
	b := fastKeyChain(WithFingerprintKey("key-b"))

	if a.Fingerprint("abcd") == b.Fingerprint("abcd") {
		t.Fatalf("fingerprints under different keys must differ")
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	svc := fastKeyChain()
	salt, _ := svc.GenerateSalt()
	key := svc.DeriveKey("abcd", salt)

	payload, err := svc.EncryptTasks(key, sampleTasks())
	if err != nil {
		t.Fatalf("EncryptTasks error: %v", err)
	}
	if len(payload.Nonce) != NonceSize {
		t.Fatalf("nonce length = %d, want %d", len(payload.Nonce), NonceSize)
	}

	got, err := svc.DecryptTasks(key, payload)
	if err != nil {
		t.Fatalf("DecryptTasks error: %v", err)
	}

	want := sampleTasks()
	if len(got) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("task %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestEncryptDecrypt_EmptyCollection(t *testing.T) {
	svc := fastKeyChain()
	key := svc.DeriveKey("abcd", bytes.Repeat([]byte{0x02}, SaltSize))

	for _, in := range [][]models.Task{nil, {}} {
		payload, err := svc.EncryptTasks(key, in)
		if err != nil {
			t.Fatalf("EncryptTasks error: %v", err)
		}
		got, err := svc.DecryptTasks(key, payload)
		if err != nil {
			t.Fatalf("DecryptTasks error: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil collection, got %#v", got)
		}
	}
}

func TestEncrypt_FreshNoncePerCall(t *testing.T) {
	svc := fastKeyChain()
	key := svc.DeriveKey("abcd", bytes.Repeat([]byte{0x03}, SaltSize))

	p1, err := svc.EncryptTasks(key, sampleTasks())
	if err != nil {
		t.Fatalf("EncryptTasks error: %v", err)
	}
	p2, err := svc.EncryptTasks(key, sampleTasks())
	if err != nil {
		t.Fatalf("EncryptTasks error: %v", err)
	}

	if bytes.Equal(p1.Nonce, p2.Nonce) {
		t.Fatalf("nonce reused under the same key")
	}
	if bytes.Equal(p1.Ciphertext, p2.Ciphertext) {
		t.Fatalf("ciphertexts must differ under different nonces")
	}
}

func TestDecrypt_WrongKeyFailsClosed(t *testing.T) {
	svc := fastKeyChain()
	salt := bytes.Repeat([]byte{0x04}, SaltSize)
	k1 := svc.DeriveKey("abcd", salt)
	k2 := svc.DeriveKey("wxyz", salt)

	payload, err := svc.EncryptTasks(k1, sampleTasks())
	if err != nil {
		t.Fatalf("EncryptTasks error: %v", err)
	}

	got, err := svc.DecryptTasks(k2, payload)
	if !errors.Is(err, ErrIntegrity) {
		t.Fatalf("expected ErrIntegrity, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected no tasks on failure, got %#v", got)
	}
}

func TestDecrypt_TamperedPayloadFailsClosed(t *testing.T) {
	svc := fastKeyChain()
	key := svc.DeriveKey("abcd", bytes.Repeat([]byte{0x05}, SaltSize))

	payload, err := svc.EncryptTasks(key, sampleTasks())
	if err != nil {
		t.Fatalf("EncryptTasks error: %v", err)
	}

	tamperedCT := models.EncryptedPayload{Nonce: payload.Nonce, Ciphertext: bytes.Clone(payload.Ciphertext)}
	tamperedCT.Ciphertext[0] ^= 0xFF

	tamperedNonce := models.EncryptedPayload{Nonce: bytes.Clone(payload.Nonce), Ciphertext: payload.Ciphertext}
	tamperedNonce.Nonce[0] ^= 0xFF

	cases := map[string]models.EncryptedPayload{
		"ciphertext":  tamperedCT,
		"nonce":       tamperedNonce,
		"short nonce": {Nonce: payload.Nonce[:4], Ciphertext: payload.Ciphertext},
		"truncated":   {Nonce: payload.Nonce, Ciphertext: payload.Ciphertext[:8]},
	}
	for name, p := range cases {
		if _, err := svc.DecryptTasks(key, p); !errors.Is(err, ErrIntegrity) {
			t.Fatalf("%s: expected ErrIntegrity, got %v", name, err)
		}
	}
}

func TestEncrypt_InvalidKeyLength(t *testing.T) {
	svc := fastKeyChain()

	if _, err := svc.EncryptTasks([]byte("short"), sampleTasks()); !errors.Is(err, ErrInvalidKeyLength) {
		t.Fatalf("expected ErrInvalidKeyLength, got %v", err)
	}
	if _, err := svc.DecryptTasks([]byte("short"), models.EncryptedPayload{}); !errors.Is(err, ErrInvalidKeyLength) {
		t.Fatalf("expected ErrInvalidKeyLength, got %v", err)
	}
}
