// Package sui generates Sui keypairs.
package sui

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

// ed25519Flag is the signature scheme flag prepended before hashing.
const ed25519Flag = 0x00

// Generator implements generator.KeyGenerator for Sui.
type Generator struct{}

// New returns a Sui generator.
func New() *Generator { return &Generator{} }

func (g *Generator) Network() generator.Network { return generator.Sui }
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
		return "", fmt.Errorf("sui seed must be %d bytes, got %d", ed25519.SeedSize, len(secret))
	}
	return hex.EncodeToString(secret), nil
}

// DeriveAddress computes Blake2b-256(flag || pubkey) as 0x-prefixed hex.
func DeriveAddress(pubKey []byte) string {
	data := make([]byte, 0, len(pubKey)+1)
	data = append(data, ed25519Flag)
	data = append(data, pubKey...)
	hash := blake2b.Sum256(data)
	return "0x" + hex.EncodeToString(hash[:])
}
