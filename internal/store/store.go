// Package store writes found keys to disk.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Amr-9/VanityHunter/internal/ui"
	"github.com/Amr-9/VanityHunter/pkg/generator"
	"github.com/Amr-9/VanityHunter/pkg/generator/solana"
)

// FileStore writes one report per match, plus a keypair file for Solana.
// It implements search.Persister. Key files are created 0600 and never
// overwritten.
type FileStore struct {
	dir string
	now func() time.Time
}

// NewFileStore returns a store writing into dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

// Dir returns the directory key files are written to.
func (s *FileStore) Dir() string { return s.dir }

// ReportPath is the location of the text report for address.
func (s *FileStore) ReportPath(address string) string {
	return filepath.Join(s.dir, "key_"+fileSafe(address)+".txt")
}

// KeypairPath is the location of the JSON keypair for address.
func (s *FileStore) KeypairPath(address string) string {
	return filepath.Join(s.dir, "key_"+fileSafe(address)+".json")
}

// Persist writes the files for result.
func (s *FileStore) Persist(result generator.Result) error {
	if err := writeExclusive(s.ReportPath(result.Address), []byte(s.report(result))); err != nil {
		return err
	}
	if result.Network != generator.Solana {
		return nil
	}
	keypair, err := solana.KeypairJSON(result.Secret)
	if err != nil {
		return fmt.Errorf("encode keypair: %w", err)
	}
	return writeExclusive(s.KeypairPath(result.Address), keypair)
}

func (s *FileStore) report(result generator.Result) string {
	return fmt.Sprintf(`%s Vanity Address
=======================

Address:     %s
Private Key: %s

Statistics:
  Time:     %s
  Attempts: %s
  Worker:   %d

Generated: %s

WARNING: Keep this private key secret and secure!
`, result.Network, result.Address, result.PrivateKey,
		ui.FormatDuration(result.Elapsed), ui.FormatNumber(result.Attempt), result.Worker,
		s.now().Format("2006-01-02 15:04:05"))
}

func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("refusing to overwrite %s: %w", path, err)
		}
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// fileSafe keeps addresses usable as file names on every platform.
func fileSafe(address string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, address)
}
