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

// Package crypto wraps the Blake2b hashing used by every layer of the ledger
// codec: 32 byte block hashes, 64 byte signature digests, 5 byte address
// checksums and the seed to account-key derivation.
package crypto

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash"

	"github.com/raiblocks/go-raiblocks/common"
	"golang.org/x/crypto/blake2b"
)

// Digest lengths produced by the ledger's hash primitive.
const (
	// DigestLength is the length of block hashes and derived keys.
	DigestLength = 32
	// ExtendedDigestLength is the length used inside the signature scheme.
	ExtendedDigestLength = 64
	// ChecksumLength is the length of address checksums.
	ChecksumLength = 5
)

// SeedLength is the required length of a master seed.
const SeedLength = 32

// ErrSeedLength is returned when a seed buffer is not exactly 32 bytes.
var ErrSeedLength = errors.New("seed must be 32 bytes")

// BlakeState wraps a Blake2b hash state. Fields are fed to it with successive
// Write calls, so composite inputs never need concatenating up front.
type BlakeState interface {
	hash.Hash
}

// NewBlakeState creates a Blake2b state with the given output length. Only
// the three digest lengths used by the ledger are valid; anything else is a
// programming error and panics.
func NewBlakeState(size int) BlakeState {
	switch size {
	case DigestLength, ExtendedDigestLength, ChecksumLength:
	default:
		panic(fmt.Sprintf("crypto: unsupported blake2b output length %d", size))
	}
	h, err := blake2b.New(size, nil)
	if err != nil {
		panic(err)
	}
	return h
}

// HashData hashes the provided data using the BlakeState and returns a
// 32 byte hash. The state is reset first, so it can be reused across calls.
func HashData(bs BlakeState, data []byte) (h common.Hash) {
	bs.Reset()
	bs.Write(data)
	bs.Sum(h[:0])
	return h
}

// Blake2b256 calculates and returns the 32 byte Blake2b hash of the input data.
func Blake2b256(data ...[]byte) []byte {
	return sum(DigestLength, data)
}

// Blake2bHash calculates and returns the Blake2b hash of the input data,
// converting it to an internal Hash data structure.
func Blake2bHash(data ...[]byte) (h common.Hash) {
	d := NewBlakeState(DigestLength)
	for _, b := range data {
		d.Write(b)
	}
	d.Sum(h[:0])
	return h
}

// Blake2b512 calculates and returns the 64 byte Blake2b hash of the input data.
func Blake2b512(data ...[]byte) []byte {
	return sum(ExtendedDigestLength, data)
}

// Checksum calculates and returns the 5 byte Blake2b digest of the input data.
func Checksum(data ...[]byte) []byte {
	return sum(ChecksumLength, data)
}

func sum(size int, data [][]byte) []byte {
	d := NewBlakeState(size)
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// DeriveKey derives the private key of the account at the given index from a
// 32 byte master seed: the 32 byte Blake2b hash of the seed followed by the
// big-endian encoding of the index. The index bytes are produced explicitly
// so the result is identical on every host byte order.
func DeriveKey(seed []byte, index uint32) ([]byte, error) {
	if len(seed) != SeedLength {
		return nil, ErrSeedLength
	}
	var ib [4]byte
	binary.BigEndian.PutUint32(ib[:], index)
	return Blake2b256(seed, ib[:]), nil
}
