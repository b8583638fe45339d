// Package solana generates Solana keypairs. A Solana address is the Base58
// encoding of the 32-byte Ed25519 public key; addresses are case-sensitive.
package solana

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mr-tron/base58"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

// Generator implements generator.KeyGenerator for Solana.
type Generator struct {
	rand io.Reader
}

// New returns a Solana generator reading from crypto/rand.
func New() *Generator {
	return &Generator{rand: rand.Reader}
}

// NewWithReader returns a generator that draws seeds from r. Only tests and
// deterministic tooling should pass anything but crypto/rand.
func NewWithReader(r io.Reader) *Generator {
	return &Generator{rand: r}
}

func (g *Generator) Network() generator.Network { return generator.Solana }
func (g *Generator) Lead() string                { return "" }
func (g *Generator) Alphabet() string            { return generator.Base58Alphabet }

// Generate creates a new Ed25519 keypair. Secret is the 64-byte private key
// (seed || public key), the layout solana-keygen stores.
func (g *Generator) Generate() (generator.Keypair, error) {
	pubKey, privKey, err := ed25519.GenerateKey(g.rand)
	if err != nil {
		return generator.Keypair{}, fmt.Errorf("ed25519 keygen: %w", err)
	}
	return generator.Keypair{
		Address: base58.Encode(pubKey),
		Secret:  privKey,
	}, nil
}

// EncodeSecret returns the Base58 form of the 64-byte keypair, accepted by
// Phantom and other wallets.
func (g *Generator) EncodeSecret(secret []byte) (string, error) {
	if len(secret) != ed25519.PrivateKeySize {
		return "", fmt.Errorf("solana secret must be %d bytes, got %d", ed25519.PrivateKeySize, len(secret))
	}
	return base58.Encode(secret), nil
}

// KeypairJSON renders the secret as a JSON byte array, the format of the
// keypair files written by the Solana CLI.
func KeypairJSON(secret []byte) ([]byte, error) {
	ints := make([]int, len(secret))
	for i, b := range secret {
		ints[i] = int(b)
	}
	return json.Marshal(ints)
}

// AddressFromSecret recomputes the address of a 64-byte private key.
func AddressFromSecret(secret []byte) (string, error) {
	if len(secret) != ed25519.PrivateKeySize {
		return "", fmt.Errorf("solana secret must be %d bytes, got %d", ed25519.PrivateKeySize, len(secret))
	}
	pub := ed25519.PrivateKey(secret).Public().(ed25519.PublicKey)
	return base58.Encode(pub), nil
}
