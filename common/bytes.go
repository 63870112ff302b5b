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

// Package common contains the fixed-size value types shared by the ledger
// codec: block hashes, account addresses, signatures and work witnesses.
package common

import "github.com/raiblocks/go-raiblocks/common/hexutil"

// FromHex returns the bytes represented by the hexadecimal string s.
// It returns nil for malformed input.
func FromHex(s string) []byte {
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil
	}
	return b
}

// CopyBytes returns an exact copy of the provided bytes.
func CopyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	copied := make([]byte, len(b))
	copy(copied, b)
	return copied
}

// ZeroBytes overwrites b in place. Buffers holding seeds or private keys are
// wiped with this as soon as derivation or signing is done.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
