// Package generator defines the keypair contract shared by every network backend.
// The search engine only ever sees a KeyGenerator: it asks for fresh keypairs, tests
// the address string and hands matches on. How a network derives its address, and how
// its private key is exported, stays inside the network packages.
package generator

import (
	"math"
	"strings"
	"time"
)

// Network represents the blockchain network for address generation.
type Network int

const (
	Solana   Network = iota // Solana (Ed25519, Base58)
	Ethereum                // Ethereum (secp256k1, Keccak-256, Hex)
	Tron                    // Tron (secp256k1, Keccak-256, Base58Check)
	Bitcoin                 // Bitcoin (secp256k1, SHA256+RIPEMD160, Base58/Bech32)
	Aptos                   // Aptos (Ed25519, SHA3-256, Hex)
	Sui                     // Sui (Ed25519, Blake2b-256, Hex)
)

// String returns the network name.
func (n Network) String() string {
	switch n {
	case Solana:
		return "Solana"
	case Ethereum:
		return "Ethereum"
	case Tron:
		return "Tron"
	case Bitcoin:
		return "Bitcoin"
	case Aptos:
		return "Aptos"
	case Sui:
		return "Sui"
	default:
		return "Unknown"
	}
}

// ParseNetwork maps a case-insensitive network name (or ticker) to a Network.
func ParseNetwork(s string) (Network, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "solana", "sol", "":
		return Solana, true
	case "ethereum", "eth":
		return Ethereum, true
	case "tron", "trx":
		return Tron, true
	case "bitcoin", "btc":
		return Bitcoin, true
	case "aptos", "apt":
		return Aptos, true
	case "sui":
		return Sui, true
	default:
		return 0, false
	}
}

// AddressType represents the Bitcoin address format.
type AddressType int

const (
	AddressTypeDefault      AddressType = iota // Default for network (P2TR for Bitcoin)
	AddressTypeTaproot                         // P2TR - Taproot (bc1p...)
	AddressTypeLegacy                          // P2PKH - Legacy (1...)
	AddressTypeNestedSegWit                    // P2SH-P2WPKH - Nested SegWit (3...)
)

// String returns the address type name.
func (a AddressType) String() string {
	switch a {
	case AddressTypeTaproot:
		return "Taproot (P2TR)"
	case AddressTypeLegacy:
		return "Legacy (P2PKH)"
	case AddressTypeNestedSegWit:
		return "Nested SegWit (P2SH)"
	default:
		return "Default"
	}
}

// ParseAddressType maps "taproot", "legacy" or "segwit" to an AddressType.
func ParseAddressType(s string) (AddressType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return AddressTypeDefault, true
	case "taproot", "p2tr":
		return AddressTypeTaproot, true
	case "legacy", "p2pkh":
		return AddressTypeLegacy, true
	case "segwit", "nested-segwit", "p2sh":
		return AddressTypeNestedSegWit, true
	default:
		return 0, false
	}
}

// Keypair is one generated candidate. Secret is the raw private material; it is
// opaque to the search engine, which zeroes it when the address does not match.
type Keypair struct {
	Address string
	Secret  []byte
}

// Result contains a successfully found vanity address and its private key.
type Result struct {
	Network    Network       // Network the address belongs to
	Address    string        // Address string that matched the pattern
	PrivateKey string        // Private key in the network's export format
	Secret     []byte        // Raw private material
	Attempt    uint64        // Value of the attempt counter when this key was tested
	Worker     int           // Index of the worker that found it
	Elapsed    time.Duration // Time since the run started
}

// Stats holds real-time performance statistics.
type Stats struct {
	Attempts   uint64        // Total number of addresses generated
	Matches    uint64        // Total number of matching addresses
	Elapsed    time.Duration // Time elapsed since start
	HashRate   float64       // Average addresses per second over the whole run
	RecentRate float64       // Addresses per second over the recent window
}

// KeyGenerator produces fresh random keypairs for one network.
// Implementations hold no mutable state, so Generate is safe to call from
// any number of goroutines at once.
type KeyGenerator interface {
	// Network reports which network the addresses belong to.
	Network() Network

	// Generate returns a new random keypair. An error means the randomness
	// source failed and is fatal for the whole search.
	Generate() (Keypair, error)

	// EncodeSecret renders raw private material in the format wallets import.
	// An error means the secret is malformed and must not be reported.
	EncodeSecret(secret []byte) (string, error)

	// Lead is the fixed text every address starts with ("0x", "T", "bc1p", ...).
	Lead() string

	// Alphabet lists the characters that may follow Lead.
	Alphabet() string
}

// Common alphabets used by the network packages.
const (
	Base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	HexAlphabet    = "0123456789abcdef"
	Bech32Alphabet = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
)

// InvalidChars returns the characters of s that can never appear in an address
// drawn from alphabet. Useful for telling the user why a prefix can't match.
func InvalidChars(s, alphabet string) []rune {
	var invalid []rune
	for _, c := range s {
		if !strings.ContainsRune(alphabet, c) {
			invalid = append(invalid, c)
		}
	}
	return invalid
}

// Difficulty estimates how many attempts it takes on average to hit a literal
// word of the given length over an alphabet of the given size. It saturates at
// math.MaxUint64.
func Difficulty(wordLen, alphabetSize int) uint64 {
	if wordLen <= 0 || alphabetSize <= 1 {
		return 1
	}
	d := math.Pow(float64(alphabetSize), float64(wordLen))
	if d >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(d)
}
