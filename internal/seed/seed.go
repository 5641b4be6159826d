// Package seed provides deterministic random sources for code generation.
package seed

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// Source draws HMAC-SHA256(salt, counter) mod n. The same salt always yields
// the same sequence of draws, so the same sequence of secret codes.
// Not safe for concurrent use.
type Source struct {
	salt []byte
	n    uint64
}

// New returns a Source keyed by salt.
func New(salt string) *Source {
	return &Source{salt: []byte(salt)}
}

// Daily returns a Source keyed by salt and the UTC date of t, so every
// player gets the same codes on the same day.
func Daily(t time.Time, salt string) *Source {
	return New(salt + "|" + DateKey(t))
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Intn returns the next draw in [0, n). n must be positive.
func (s *Source) Intn(n int) int {
	var ctr [8]byte
	binary.BigEndian.PutUint64(ctr[:], s.n)
	s.n++

	h := hmac.New(sha256.New, s.salt)
	h.Write(ctr[:])
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}
