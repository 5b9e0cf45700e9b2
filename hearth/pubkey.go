// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hearth

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	// PubKeyLength length of a validator public key in bytes (BLS12-381 G1).
	PubKeyLength = 48
)

// PubKey validator public key. It identifies a validator on the consensus
// layer; the controlling operator account is resolved externally.
type PubKey [PubKeyLength]byte

var (
	_ json.Marshaler   = (*PubKey)(nil)
	_ json.Unmarshaler = (*PubKey)(nil)
)

// String implements the stringer interface.
func (p PubKey) String() string {
	return "0x" + hex.EncodeToString(p[:])
}

// AbbrevString returns abbrev string presentation.
func (p PubKey) AbbrevString() string {
	return fmt.Sprintf("0x%x…%x", p[:4], p[44:])
}

// Bytes returns byte slice form of the public key.
func (p PubKey) Bytes() []byte {
	return p[:]
}

// IsZero returns if the public key has all zero bytes.
func (p PubKey) IsZero() bool {
	return p == PubKey{}
}

// MarshalJSON implements json.Marshaler.
func (p *PubKey) MarshalJSON() ([]byte, error) {
	if p == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *PubKey) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err != nil {
		return err
	}
	parsed, err := ParsePubKey(hex)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePubKey converts a string presented key into PubKey type.
func ParsePubKey(s string) (PubKey, error) {
	if len(s) == PubKeyLength*2 {
	} else if len(s) == PubKeyLength*2+2 {
		if strings.ToLower(s[:2]) != "0x" {
			return PubKey{}, errors.New("invalid prefix")
		}
		s = s[2:]
	} else {
		return PubKey{}, errors.New("invalid length")
	}

	var p PubKey
	if _, err := hex.Decode(p[:], []byte(s)); err != nil {
		return PubKey{}, err
	}
	return p, nil
}

// BytesToPubKey converts bytes slice into PubKey.
// If b is larger than PubKey length, b will be cropped (from the left).
// If b is smaller than PubKey length, b will be extended (from the left).
func BytesToPubKey(b []byte) PubKey {
	var p PubKey
	if len(b) > PubKeyLength {
		b = b[len(b)-PubKeyLength:]
	}
	copy(p[PubKeyLength-len(b):], b)
	return p
}
