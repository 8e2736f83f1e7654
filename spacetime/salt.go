// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package spacetime

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
)

// SaltLength is the byte length of a salt.
const SaltLength = 8

// TagLength is the byte length of an audit tag.
const TagLength = 8

// Salt perturbs audit tag derivation. It rotates once per salt era.
type Salt [SaltLength]byte

// String implements stringer.
func (s Salt) String() string {
	return "0x" + hex.EncodeToString(s[:])
}

// Bytes returns byte slice form of the salt.
func (s Salt) Bytes() []byte {
	return s[:]
}

// MarshalText implements encoding.TextMarshaler.
func (s Salt) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Salt) UnmarshalText(text []byte) error {
	str := string(text)
	if len(str) >= 2 && strings.ToLower(str[:2]) == "0x" {
		str = str[2:]
	}
	if len(str) != SaltLength*2 {
		return errors.New("invalid salt length")
	}
	_, err := hex.Decode(s[:], []byte(str))
	return err
}

// BytesToSalt converts the leading bytes of b into a salt.
func BytesToSalt(b []byte) (s Salt) {
	copy(s[:], b)
	return
}

// Tag is the audit tag of an encoded piece under a salt.
type Tag [TagLength]byte

// Uint64 returns the big-endian numeric value of the tag.
func (t Tag) Uint64() uint64 {
	return binary.BigEndian.Uint64(t[:])
}

// String implements stringer.
func (t Tag) String() string {
	return "0x" + hex.EncodeToString(t[:])
}

// BytesToTag converts the leading bytes of b into a tag.
func BytesToTag(b []byte) (t Tag) {
	copy(t[:], b)
	return
}
