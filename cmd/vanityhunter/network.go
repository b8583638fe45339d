package main

import (
	"runtime"
	"strings"
	"unicode"

	"github.com/Amr-9/VanityHunter/internal/config"
	"github.com/Amr-9/VanityHunter/pkg/generator"
	"github.com/Amr-9/VanityHunter/pkg/generator/aptos"
	"github.com/Amr-9/VanityHunter/pkg/generator/bitcoin"
	"github.com/Amr-9/VanityHunter/pkg/generator/ethereum"
	"github.com/Amr-9/VanityHunter/pkg/generator/solana"
	"github.com/Amr-9/VanityHunter/pkg/generator/sui"
	"github.com/Amr-9/VanityHunter/pkg/generator/tron"
	"github.com/Amr-9/VanityHunter/pkg/matcher"
	"github.com/Amr-9/VanityHunter/pkg/search"
)

// newGenerator returns the key generator for cfg.Network. cfg must be valid.
func newGenerator(cfg config.Config) (generator.KeyGenerator, error) {
	network, ok := generator.ParseNetwork(cfg.Network)
	if !ok {
		return nil, &search.ConfigError{Field: "network", Value: cfg.Network}
	}
	addrType, ok := generator.ParseAddressType(cfg.AddressType)
	if !ok {
		return nil, &search.ConfigError{Field: "address_type", Value: cfg.AddressType}
	}

	switch network {
	case generator.Ethereum:
		return ethereum.New(), nil
	case generator.Tron:
		return tron.New(), nil
	case generator.Bitcoin:
		return bitcoin.New(addrType), nil
	case generator.Aptos:
		return aptos.New(), nil
	case generator.Sui:
		return sui.New(), nil
	default:
		return solana.New(), nil
	}
}

func addressType(gen generator.KeyGenerator) generator.AddressType {
	if b, ok := gen.(*bitcoin.Generator); ok {
		return b.AddressType()
	}
	return generator.AddressTypeDefault
}

// invalidChars lists characters of word outside alphabet. With ignoreCase a
// character is fine if either of its cases is in the alphabet.
func invalidChars(word, alphabet string, ignoreCase bool) []rune {
	if !ignoreCase {
		return generator.InvalidChars(word, alphabet)
	}
	var bad []rune
	for _, c := range word {
		if !strings.ContainsRune(alphabet, unicode.ToLower(c)) && !strings.ContainsRune(alphabet, unicode.ToUpper(c)) {
			bad = append(bad, c)
		}
	}
	return bad
}

// estimateDifficulty returns the expected attempts per match, or 0 when the
// pattern is a regex and no estimate is possible.
func estimateDifficulty(cfg config.Config, gen generator.KeyGenerator, word string) uint64 {
	mode, err := matcher.ParseMode(cfg.Mode)
	if err != nil {
		return 0
	}
	size := len(gen.Alphabet())
	switch mode {
	case matcher.ModePrefix, matcher.ModeSuffix, matcher.ModeContains:
		return generator.Difficulty(len(word), size)
	case matcher.ModeRepeating:
		// The first character is free; every following one must repeat it.
		return generator.Difficulty(cfg.Count-1, size)
	default:
		return 0
	}
}

func defaultWorkers() int {
	return runtime.NumCPU()
}
