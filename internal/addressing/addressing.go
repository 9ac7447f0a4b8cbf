// Package addressing derives deterministic, collision-free storage keys for
// ledger entities. Each key hashes a fixed namespace tag plus the identifying
// fields of the entity, so the same logical entity always maps to the same key
// and distinct entities never share one.
package addressing

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
)

// Key is a fixed-width entity storage key.
type Key [32]byte

// String returns the key as lowercase hex. Entities reference each other by
// this string form.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// FromHex parses the string form produced by String back into a Key.
func FromHex(s string) (Key, error) {
	var k Key
	b, err := hex.DecodeString(s)
	if err != nil {
		return k, err
	}
	if len(b) != len(k) {
		return k, errors.New("addressing: key must be 32 bytes")
	}
	copy(k[:], b)
	return k, nil
}

// Bytes returns the raw key bytes for use as a KV store key.
func (k Key) Bytes() []byte {
	b := make([]byte, len(k))
	copy(b, k[:])
	return b
}

// Entity namespaces.
const (
	nsPlatform    = "platform"
	nsUserProfile = "user_profile"
	nsGroup       = "group"
	nsBet         = "bet"
	nsUserBet     = "user_bet"
)

// derive hashes the namespace and each field with length prefixes, so that
// field boundaries are unambiguous ("ab","c" never collides with "a","bc").
func derive(namespace string, fields ...string) Key {
	h := sha256.New()
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(namespace)))
	h.Write(lenBuf[:])
	h.Write([]byte(namespace))
	for _, f := range fields {
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(f)))
		h.Write(lenBuf[:])
		h.Write([]byte(f))
	}
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// Platform returns the singleton platform key.
func Platform() Key {
	return derive(nsPlatform)
}

// UserProfile returns the profile key for a principal.
func UserProfile(user string) Key {
	return derive(nsUserProfile, user)
}

// Group returns the group key for an admin and group name.
func Group(admin, name string) Key {
	return derive(nsGroup, admin, name)
}

// Bet returns the bet key for a group key and a caller-supplied bet id.
func Bet(groupKey Key, betID string) Key {
	return derive(nsBet, groupKey.String(), betID)
}

// UserBet returns the stake key for a bet key and a principal.
func UserBet(betKey Key, user string) Key {
	return derive(nsUserBet, betKey.String(), user)
}
