package solana

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"testing"

	"github.com/mr-tron/base58"
)

func TestGenerateDeterministicSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, ed25519.SeedSize)
	g := NewWithReader(bytes.NewReader(seed))

	kp, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := ed25519.NewKeyFromSeed(seed)
	if !bytes.Equal(kp.Secret, want) {
		t.Error("secret is not seed||pubkey")
	}
	pub, err := base58.Decode(kp.Address)
	if err != nil {
		t.Fatalf("address is not base58: %v", err)
	}
	if !bytes.Equal(pub, want.Public().(ed25519.PublicKey)) {
		t.Error("address does not encode the public key")
	}

	addr, err := AddressFromSecret(kp.Secret)
	if err != nil || addr != kp.Address {
		t.Errorf("AddressFromSecret = %q, %v; want %q", addr, err, kp.Address)
	}
}

func TestGenerateFailsWithoutEntropy(t *testing.T) {
	g := NewWithReader(bytes.NewReader(nil))
	if _, err := g.Generate(); err == nil {
		t.Fatal("expected error from empty reader")
	}
}

func TestGenerateUnique(t *testing.T) {
	g := New()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		kp, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if seen[kp.Address] {
			t.Fatalf("duplicate address %s", kp.Address)
		}
		seen[kp.Address] = true
		if n := len(kp.Address); n < 32 || n > 44 {
			t.Errorf("address %s has length %d", kp.Address, n)
		}
	}
}

func TestSecretEncodings(t *testing.T) {
	g := New()
	kp, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	encoded, err := g.EncodeSecret(kp.Secret)
	if err != nil {
		t.Fatalf("EncodeSecret: %v", err)
	}
	decoded, err := base58.Decode(encoded)
	if err != nil || !bytes.Equal(decoded, kp.Secret) {
		t.Errorf("base58 secret does not round-trip: %v", err)
	}

	raw, err := KeypairJSON(kp.Secret)
	if err != nil {
		t.Fatalf("KeypairJSON: %v", err)
	}
	var ints []int
	if err := json.Unmarshal(raw, &ints); err != nil {
		t.Fatalf("keypair json: %v", err)
	}
	if len(ints) != 64 {
		t.Fatalf("keypair json has %d entries, want 64", len(ints))
	}
	for i, v := range ints {
		if byte(v) != kp.Secret[i] {
			t.Fatalf("byte %d = %d, want %d", i, v, kp.Secret[i])
		}
	}
}

func TestRejectsShortSecret(t *testing.T) {
	if _, err := AddressFromSecret(make([]byte, 32)); err == nil {
		t.Error("AddressFromSecret: expected error for 32-byte secret")
	}
	if s, err := New().EncodeSecret(make([]byte, 32)); err == nil {
		t.Errorf("EncodeSecret: expected error for 32-byte secret, got %q", s)
	}
}
