// Package daily picks the phrase of the day and records daily results.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// PhraseIndex returns a deterministic index for a date using
// HMAC(salt, YYYY-MM-DD) % n. The salt keeps the sequence unguessable.
func PhraseIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as the modulus source
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}
