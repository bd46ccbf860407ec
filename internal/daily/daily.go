// Package daily derives the shared puzzle of the day. Every player generating a
// puzzle for the same date and salt gets the same seed, and so the same rounds.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns HMAC-SHA256(salt, DateKey(t)) truncated to its first 8 bytes.
func Seed(t time.Time, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(t)))
	sum := h.Sum(nil)
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

// Rand returns a random source seeded for the date.
func Rand(t time.Time, salt string) *rand.Rand {
	return rand.New(rand.NewSource(Seed(t, salt)))
}
