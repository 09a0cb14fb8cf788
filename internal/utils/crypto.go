package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

const fingerprintLen = 16

// Fingerprinter derives stable, non-reversible references for account
// identifiers. They are safe for log fields and cache keys.
type Fingerprinter struct {
	key []byte
}

// NewFingerprinter builds a keyed BLAKE2b fingerprinter. Keys longer than
// blake2b.Size are first reduced with an unkeyed hash.
func NewFingerprinter(key string) *Fingerprinter {
	k := []byte(key)
	if len(k) > blake2b.Size {
		sum := blake2b.Sum256(k)
		k = sum[:]
	}
	return &Fingerprinter{key: k}
}

// NewRandomFingerprinter builds a fingerprinter with a random key. Its
// references are stable only for the life of the process.
func NewRandomFingerprinter() (*Fingerprinter, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate fingerprint key: %w", err)
	}
	return &Fingerprinter{key: key}, nil
}

// Fingerprint returns a short hex reference for acct. A fresh hash state
// is used per call so a Fingerprinter can be shared across goroutines.
func (f *Fingerprinter) Fingerprint(acct string) (string, error) {
	h, err := blake2b.New256(f.key)
	if err != nil {
		return "", fmt.Errorf("failed to init fingerprint hash: %w", err)
	}
	h.Write([]byte(acct))
	return hex.EncodeToString(h.Sum(nil))[:fingerprintLen], nil
}

// MustFingerprint is Fingerprint for keys already validated by NewFingerprinter.
func (f *Fingerprinter) MustFingerprint(acct string) string {
	ref, err := f.Fingerprint(acct)
	if err != nil {
		panic("failed to fingerprint account: " + err.Error())
	}
	return ref
}
