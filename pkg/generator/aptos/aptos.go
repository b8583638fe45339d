// Package aptos generates Aptos keypairs.
// Address = SHA3-256(pubkey || 0x00), rendered as 64 lowercase hex characters.
package aptos

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

// singleSignatureScheme is appended to the public key before hashing.
const singleSignatureScheme = 0x00

// Generator implements generator.KeyGenerator for Aptos.
type Generator struct{}

// New returns an Aptos generator.
func New() *Generator { return &Generator{} }

func (g *Generator) Network() generator.Network { return generator.Aptos }
func (g *Generator) Lead() string                { return "0x" }
func (g *Generator) Alphabet() string            { return generator.HexAlphabet }

// Generate creates an Ed25519 keypair. Secret is the 32-byte seed.
func (g *Generator) Generate() (generator.Keypair, error) {
	pubKey, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return generator.Keypair{}, fmt.Errorf("ed25519 keygen: %w", err)
	}
	return generator.Keypair{Address: DeriveAddress(pubKey), Secret: privKey.Seed()}, nil
}

// EncodeSecret returns the seed as hex.
func (g *Generator) EncodeSecret(secret []byte) (string, error) {
	if len(secret) != ed25519.SeedSize {
		return "", fmt.Errorf("aptos seed must be %d bytes, got %d", ed25519.SeedSize, len(secret))
	}
	return hex.EncodeToString(secret), nil
}

// DeriveAddress derives an Aptos address from an Ed25519 public key.
func DeriveAddress(pubKey []byte) string {
	h := sha3.New256()
	h.Write(pubKey)
	h.Write([]byte{singleSignatureScheme})
	return "0x" + hex.EncodeToString(h.Sum(nil))
}
