// Package digest computes the content fingerprints used to detect change
// between recorded, desired and on-disk file content.
//
// A Digest is the 160-bit SHA-1 of the content bytes. It depends on the
// bytes only, never on file names or paths, so identical content always
// yields an identical digest.
package digest

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
)

// Size is the length of a Digest in bytes.
const Size = sha1.Size

// Digest is a SHA-1 content fingerprint.
type Digest [Size]byte

// Of returns the digest of content.
func Of(content []byte) Digest {
	return Digest(sha1.Sum(content))
}

// OfReader streams r through the hash and returns its digest.
func OfReader(r io.Reader) (Digest, error) {
	h := sha1.New()
	if _, err := io.Copy(h, r); err != nil {
		return Digest{}, err
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}

// Parse decodes a 40 character hex string.
func Parse(s string) (Digest, error) {
	var d Digest
	if len(s) != hex.EncodedLen(Size) {
		return d, fmt.Errorf("digest %q: want %d hex characters, got %d", s, hex.EncodedLen(Size), len(s))
	}
	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return d, fmt.Errorf("digest %q: %w", s, err)
	}
	return d, nil
}

// String returns the lowercase hex encoding.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 8 hex characters, for log lines.
func (d Digest) Short() string {
	return d.String()[:8]
}

// IsZero reports whether d is the zero value.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
