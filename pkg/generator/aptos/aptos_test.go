package aptos

import (
	"crypto/ed25519"
	"encoding/hex"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	g := New()
	kp, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(kp.Address, "0x") || len(kp.Address) != 66 {
		t.Fatalf("unexpected address %q", kp.Address)
	}

	encoded, err := g.EncodeSecret(kp.Secret)
	if err != nil {
		t.Fatalf("EncodeSecret: %v", err)
	}
	seed, err := hex.DecodeString(encoded)
	if err != nil {
		t.Fatalf("secret is not hex: %v", err)
	}
	pub := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	if got := DeriveAddress(pub); got != kp.Address {
		t.Errorf("seed derives %s, want %s", got, kp.Address)
	}
}

func TestEncodeSecretRejectsWrongLength(t *testing.T) {
	if _, err := New().EncodeSecret(make([]byte, 64)); err == nil {
		t.Error("expected error for 64-byte secret")
	}
}

func TestDeriveAddressDependsOnKey(t *testing.T) {
	a := DeriveAddress(make([]byte, 32))
	b := DeriveAddress(append(make([]byte, 31), 1))
	if a == b {
		t.Error("different keys produced the same address")
	}
	if a != DeriveAddress(make([]byte, 32)) {
		t.Error("DeriveAddress is not deterministic")
	}
}
