// Container fingerprints.
//
// A fingerprint identifies the content of a document, not its file: it is
// the digest of the container Save would write uncompressed, so two
// documents with the same groups, items and properties fingerprint alike
// however they were built or stored. The container is streamed through the
// hasher rather than materialised first.
package cktext

import (
	"encoding/hex"
	"fmt"
	"hash"
	"hash/fnv"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Hash algorithm constants, selected with Config.HashAlgorithm.
const (
	AlgXXHash3 = 1 // Default, fastest
	AlgFNV1a   = 2 // Standard library only
	AlgBlake2b = 3 // Cryptographic, truncated to 64 bits
)

// newDigest returns a 64-bit hasher for alg, or nil if alg is unknown.
func newDigest(alg int) hash.Hash {
	switch alg {
	case AlgXXHash3:
		return xxh3.New()
	case AlgFNV1a:
		return fnv.New64a()
	case AlgBlake2b:
		h, _ := blake2b.New(8, nil) // only fails for a bad size or key
		return h
	default:
		return nil
	}
}

// Fingerprint returns a 16 hex character digest of the uncompressed
// container using the configured hash algorithm.
func (d *Document) Fingerprint() (string, error) {
	h := newDigest(d.config.HashAlgorithm)
	if h == nil {
		return "", fmt.Errorf("fingerprint: unknown hash algorithm %d", d.config.HashAlgorithm)
	}
	h.Write(header(false))
	if err := d.encode(h); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
