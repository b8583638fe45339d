// Package bitcoin generates Bitcoin keypairs.
// Supports P2TR (Taproot), P2PKH (Legacy), and P2SH-P2WPKH (Nested SegWit).
package bitcoin

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"golang.org/x/crypto/ripemd160"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

// Generator implements generator.KeyGenerator for one Bitcoin address type.
type Generator struct {
	addrType generator.AddressType
	params   *chaincfg.Params
	rand     io.Reader
}

// New returns a mainnet generator. AddressTypeDefault selects Taproot.
func New(addrType generator.AddressType) *Generator {
	if addrType == generator.AddressTypeDefault {
		addrType = generator.AddressTypeTaproot
	}
	return &Generator{addrType: addrType, params: &chaincfg.MainNetParams, rand: rand.Reader}
}

// AddressType reports the address format this generator produces.
func (g *Generator) AddressType() generator.AddressType { return g.addrType }

func (g *Generator) Network() generator.Network { return generator.Bitcoin }

// Lead returns the fixed start of every address of this type.
func (g *Generator) Lead() string {
	switch g.addrType {
	case generator.AddressTypeLegacy:
		return "1"
	case generator.AddressTypeNestedSegWit:
		return "3"
	default:
		return "bc1p"
	}
}

// Alphabet is Bech32 for Taproot and Base58 for the legacy formats.
func (g *Generator) Alphabet() string {
	if g.addrType == generator.AddressTypeTaproot {
		return generator.Bech32Alphabet
	}
	return generator.Base58Alphabet
}

// Generate draws a random 32-byte scalar and derives the address for the
// configured type. Secret is the raw scalar.
func (g *Generator) Generate() (generator.Keypair, error) {
	var privKeyBytes [32]byte
	if _, err := io.ReadFull(g.rand, privKeyBytes[:]); err != nil {
		return generator.Keypair{}, fmt.Errorf("read entropy: %w", err)
	}
	privKey, pubKey := btcec.PrivKeyFromBytes(privKeyBytes[:])

	address, err := DeriveAddress(pubKey, g.addrType, g.params)
	if err != nil {
		return generator.Keypair{}, err
	}
	return generator.Keypair{Address: address, Secret: privKey.Serialize()}, nil
}

// EncodeSecret converts the raw scalar to compressed-key WIF (K... or L...).
func (g *Generator) EncodeSecret(secret []byte) (string, error) {
	if len(secret) != btcec.PrivKeyBytesLen {
		return "", fmt.Errorf("bitcoin secret must be %d bytes, got %d", btcec.PrivKeyBytesLen, len(secret))
	}
	privKey, _ := btcec.PrivKeyFromBytes(secret)
	wif, err := btcutil.NewWIF(privKey, g.params, true)
	if err != nil {
		return "", fmt.Errorf("encode wif: %w", err)
	}
	return wif.String(), nil
}

// DeriveAddress derives the address of pubKey for the given type.
func DeriveAddress(pubKey *btcec.PublicKey, addrType generator.AddressType, params *chaincfg.Params) (string, error) {
	var (
		addr btcutil.Address
		err  error
	)
	switch addrType {
	case generator.AddressTypeLegacy:
		addr, err = btcutil.NewAddressPubKeyHash(hash160(pubKey.SerializeCompressed()), params)
	case generator.AddressTypeNestedSegWit:
		// P2WPKH witness program: OP_0 PUSH20 <hash160(pubkey)>, wrapped in P2SH.
		program := append([]byte{0x00, 0x14}, hash160(pubKey.SerializeCompressed())...)
		addr, err = btcutil.NewAddressScriptHashFromHash(hash160(program), params)
	default:
		// BIP-86 key-path-only output key.
		outputKey := txscript.ComputeTaprootKeyNoScript(pubKey)
		addr, err = btcutil.NewAddressTaproot(schnorr.SerializePubKey(outputKey), params)
	}
	if err != nil {
		return "", fmt.Errorf("derive %s address: %w", addrType, err)
	}
	return addr.EncodeAddress(), nil
}

// hash160 computes RIPEMD160(SHA256(data)).
func hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(sha[:])
	return h.Sum(nil)
}
