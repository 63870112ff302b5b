// Copyright 2021 The go-raiblocks Authors
// This file is part of the go-raiblocks library.
//
// The go-raiblocks library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-raiblocks library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-raiblocks library. If not, see <http://www.gnu.org/licenses/>.

// Package base32 implements the 32-symbol account encoding.
//
// The alphabet omits the characters 0, 2, l and v, which are either
// visually ambiguous or easy to mistype. Input that is not a whole number of
// 5-bit groups is left-padded with zero bits, so a 32-byte public key encodes
// to 52 characters and a 5-byte checksum to exactly 8.
package base32

import (
	"fmt"
	"strings"
)

const charset = "13456789abcdefghijkmnopqrstuwxyz"

// rev maps an ASCII byte back to its 5-bit value, or 0xff for bytes outside
// the alphabet.
var rev [256]byte

func init() {
	for i := range rev {
		rev[i] = 0xff
	}
	for i := 0; i < len(charset); i++ {
		rev[charset[i]] = byte(i)
	}
}

// EncodeToString encodes src into the account alphabet.
func EncodeToString(src []byte) string {
	bits := len(src) * 8
	pad := (5 - bits%5) % 5

	var out strings.Builder
	out.Grow((bits + pad) / 5)

	// acc holds the bits consumed from src that have not been emitted yet,
	// left-aligned at position n.
	acc := uint32(0)
	n := pad
	for _, b := range src {
		acc = acc<<8 | uint32(b)
		n += 8
		for n >= 5 {
			n -= 5
			out.WriteByte(charset[(acc>>n)&31])
		}
	}
	return out.String()
}

// DecodeString decodes a string in the account alphabet back into bytes,
// dropping the zero bits that EncodeToString left-padded with. Non-alphabet
// characters and non-zero padding are rejected.
func DecodeString(s string) ([]byte, error) {
	bits := len(s) * 5
	pad := bits % 8
	if pad >= 5 {
		// A whole leading character of padding can never come out of
		// EncodeToString.
		return nil, fmt.Errorf("base32 decode: invalid length %d", len(s))
	}

	ret := make([]byte, 0, bits/8)
	acc := uint32(0)
	n := 0
	for i := 0; i < len(s); i++ {
		v := rev[s[i]]
		if v == 0xff {
			return nil, fmt.Errorf("base32 decode: invalid character %q at position %d", s[i], i)
		}
		acc = acc<<5 | uint32(v)
		n += 5
		if i == 0 && pad > 0 {
			if acc>>(n-pad) != 0 {
				return nil, fmt.Errorf("base32 decode: non-zero padding")
			}
			n -= pad
		}
		for n >= 8 {
			n -= 8
			ret = append(ret, byte(acc>>n))
		}
	}
	return ret, nil
}
