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

// Package hexutil implements the hex encoding used throughout the ledger codec.
//
// Unlike the 0x-prefixed encoding common elsewhere, ledger quantities travel as
// bare hex strings of even length. Canonical output is upper case; decoding
// accepts either case.
package hexutil

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Errors returned by the decoding functions.
var (
	ErrOddLength = &decError{"hex string of odd length"}
	ErrSyntax    = &decError{"invalid hex string"}
)

type decError struct{ msg string }

func (err decError) Error() string { return err.msg }

// Encode encodes b as an upper-case hex string.
func Encode(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// Decode decodes a hex string. Both upper and lower case digits are accepted.
func Decode(input string) ([]byte, error) {
	if len(input)%2 != 0 {
		return nil, ErrOddLength
	}
	b, err := hex.DecodeString(input)
	if err != nil {
		return nil, ErrSyntax
	}
	return b, nil
}

// MustDecode decodes a hex string. It panics for invalid input.
func MustDecode(input string) []byte {
	dec, err := Decode(input)
	if err != nil {
		panic(err)
	}
	return dec
}

// UnmarshalFixedText decodes the input as a string with the exact length
// required by out. typname is used for error reporting only.
func UnmarshalFixedText(typname string, input, out []byte) error {
	raw, err := Decode(string(input))
	if err != nil {
		return err
	}
	if len(raw) != len(out) {
		return fmt.Errorf("hex string has length %d, want %d for %s", len(raw)*2, len(out)*2, typname)
	}
	copy(out, raw)
	return nil
}

// UnmarshalFixedJSON decodes the input as a quoted JSON string with the exact
// length required by out.
func UnmarshalFixedJSON(typname string, input, out []byte) error {
	if !isString(input) {
		return fmt.Errorf("non-string value for %s", typname)
	}
	return UnmarshalFixedText(typname, input[1:len(input)-1], out)
}

func isString(input []byte) bool {
	return len(input) >= 2 && input[0] == '"' && input[len(input)-1] == '"'
}
