package model

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// HashSize is the length of a dataset content digest in bytes.
const HashSize = 32

// ErrInvalidHash is returned when a content hash is not 64 hex characters.
var ErrInvalidHash = errors.New("content hash must be 32 bytes hex encoded")

// Hash is a fixed-size content digest. It travels as lowercase hex.
type Hash [HashSize]byte

// ParseHash decodes a 64 character hex string.
func ParseHash(s string) (Hash, error) {
	var h Hash
	if hex.DecodedLen(len(s)) != HashSize {
		return h, ErrInvalidHash
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return h, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return h, nil
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// MarshalJSON encodes the hash as a hex string.
func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a hex string.
func (h *Hash) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseHash(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
