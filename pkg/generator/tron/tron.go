// Package tron generates Tron keypairs. Tron shares Ethereum's key and hash
// scheme but renders the 21-byte address (0x41 || keccak tail) in Base58Check,
// so every mainnet address starts with 'T'.
package tron

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

// MainnetPrefix is the version byte of Tron mainnet addresses.
const MainnetPrefix = 0x41

// ErrChecksum is returned by DecodeAddress when the checksum does not verify.
var ErrChecksum = errors.New("tron: bad address checksum")

// Generator implements generator.KeyGenerator for Tron.
type Generator struct{}

// New returns a Tron generator.
func New() *Generator { return &Generator{} }

func (g *Generator) Network() generator.Network { return generator.Tron }
func (g *Generator) Lead() string                { return "T" }
func (g *Generator) Alphabet() string            { return generator.Base58Alphabet }

// Generate creates a new secp256k1 key and derives its Tron address.
func (g *Generator) Generate() (generator.Keypair, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return generator.Keypair{}, fmt.Errorf("secp256k1 keygen: %w", err)
	}
	return generator.Keypair{
		Address: DeriveAddress(crypto.FromECDSAPub(&privateKey.PublicKey)),
		Secret:  crypto.FromECDSA(privateKey),
	}, nil
}

// EncodeSecret returns the private key as hex, the format TronLink imports.
func (g *Generator) EncodeSecret(secret []byte) (string, error) {
	if _, err := crypto.ToECDSA(secret); err != nil {
		return "", fmt.Errorf("tron secret: %w", err)
	}
	return hex.EncodeToString(secret), nil
}

// DeriveAddress derives a Tron address from a 65-byte uncompressed public key.
func DeriveAddress(pubKeyBytes []byte) string {
	// Drop the 0x04 marker and hash the 64-byte X||Y.
	hash := crypto.Keccak256(pubKeyBytes[1:])

	data := make([]byte, 21)
	data[0] = MainnetPrefix
	copy(data[1:], hash[len(hash)-20:])
	return encodeCheck(data)
}

// DecodeAddress reverses DeriveAddress' encoding and returns the 21-byte payload.
func DecodeAddress(address string) ([]byte, error) {
	raw, err := base58.Decode(address)
	if err != nil {
		return nil, fmt.Errorf("tron: %w", err)
	}
	if len(raw) != 25 {
		return nil, fmt.Errorf("tron: address payload is %d bytes, want 25", len(raw))
	}
	payload, sum := raw[:21], raw[21:]
	if want := checksum(payload); string(want[:]) != string(sum) {
		return nil, ErrChecksum
	}
	return payload, nil
}

func encodeCheck(data []byte) string {
	sum := checksum(data)
	return base58.Encode(append(data, sum[:]...))
}

// checksum is the first 4 bytes of double SHA-256.
func checksum(data []byte) [4]byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	var out [4]byte
	copy(out[:], second[:4])
	return out
}
