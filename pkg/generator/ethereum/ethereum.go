// Package ethereum generates Ethereum keypairs (secp256k1, Keccak-256).
package ethereum

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

// Generator implements generator.KeyGenerator for Ethereum.
// Addresses are rendered as lowercase hex so a pattern never has to deal
// with EIP-55 checksum casing.
type Generator struct{}

// New returns an Ethereum generator.
func New() *Generator { return &Generator{} }

func (g *Generator) Network() generator.Network { return generator.Ethereum }
func (g *Generator) Lead() string                { return "0x" }
func (g *Generator) Alphabet() string            { return generator.HexAlphabet }

// Generate creates a new secp256k1 key and derives its address.
func (g *Generator) Generate() (generator.Keypair, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return generator.Keypair{}, fmt.Errorf("secp256k1 keygen: %w", err)
	}
	address := crypto.PubkeyToAddress(privateKey.PublicKey)
	return generator.Keypair{
		Address: AddressToHex(address.Bytes()),
		Secret:  crypto.FromECDSA(privateKey),
	}, nil
}

// EncodeSecret returns the private key as 64 hex characters.
func (g *Generator) EncodeSecret(secret []byte) (string, error) {
	if _, err := crypto.ToECDSA(secret); err != nil {
		return "", fmt.Errorf("ethereum secret: %w", err)
	}
	return hex.EncodeToString(secret), nil
}

// AddressToHex converts raw address bytes to a lowercase 0x-prefixed string.
func AddressToHex(addressBytes []byte) string {
	return "0x" + hex.EncodeToString(addressBytes)
}

// ChecksumAddress returns the EIP-55 form of a lowercase hex address, for display.
func ChecksumAddress(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("not a hex address: %q", address)
	}
	return common.HexToAddress(address).Hex(), nil
}
