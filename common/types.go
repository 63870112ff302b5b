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

package common

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/raiblocks/go-raiblocks/common/base32"
	"github.com/raiblocks/go-raiblocks/common/hexutil"
	"golang.org/x/crypto/blake2b"
)

// Lengths of hashes, addresses and signatures in bytes.
const (
	// HashLength is the expected length of a block hash.
	HashLength = 32
	// AddressLength is the expected length of a raw account public key.
	AddressLength = 32
	// SignatureLength is the expected length of a block signature.
	SignatureLength = 64
	// WorkLength is the expected length of a proof-of-work witness.
	WorkLength = 8
	// AddressChecksumLength is the length of the digest appended to an
	// encoded address.
	AddressChecksumLength = 5
)

// AddressPrefix is the network prefix of encoded account addresses.
const AddressPrefix = "xrb_"

// Encoded address dimensions: a 32-byte key is 52 alphabet characters, the
// 5-byte checksum another 8.
const (
	addressBodyLength    = 52
	addressSuffixLength  = 8
	EncodedAddressLength = len(AddressPrefix) + addressBodyLength + addressSuffixLength
)

var (
	// ErrAddressFormat is returned when an encoded address has the wrong
	// prefix, the wrong length, or characters outside the account alphabet.
	ErrAddressFormat = errors.New("invalid address format")
	// ErrAddressChecksum is returned when an encoded address is well formed
	// but its checksum does not match the decoded public key.
	ErrAddressChecksum = errors.New("invalid address checksum")
)

/////////// Hash

// Hash represents the 32 byte Blake2b hash of a block's canonical fields.
type Hash [HashLength]byte

// BytesToHash sets b to hash.
// If b is larger than len(h), b will be cropped from the left.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// HexToHash sets byte representation of s to hash.
// If b is larger than len(h), b will be cropped from the left.
func HexToHash(s string) Hash { return BytesToHash(FromHex(s)) }

// Bytes gets the byte representation of the underlying hash.
func (h Hash) Bytes() []byte { return h[:] }

// Hex converts a hash to a hex string.
func (h Hash) Hex() string { return hexutil.Encode(h[:]) }

// String implements fmt.Stringer.
func (h Hash) String() string {
	return h.Hex()
}

// TerminalString returns an abbreviated form of the hash for
// human-readable display.
func (h Hash) TerminalString() string {
	return fmt.Sprintf("%x..%x", h[:3], h[29:])
}

// Format implements fmt.Formatter.
// Hash supports the %v, %s, %q, %x and %X format verbs.
func (h Hash) Format(s fmt.State, c rune) {
	switch c {
	case 'x':
		fmt.Fprintf(s, "%x", h[:])
	case 'X':
		fmt.Fprintf(s, "%X", h[:])
	case 'v', 's':
		s.Write([]byte(h.Hex()))
	case 'q':
		fmt.Fprintf(s, "%q", h.Hex())
	default:
		fmt.Fprintf(s, "%%!%c(hash=%x)", c, h)
	}
}

// UnmarshalText parses a hash in hex syntax.
func (h *Hash) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Hash", input, h[:])
}

// UnmarshalJSON parses a hash in hex syntax.
func (h *Hash) UnmarshalJSON(input []byte) error {
	return hexutil.UnmarshalFixedJSON("Hash", input, h[:])
}

// MarshalText returns the hex representation of h.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// SetBytes sets the hash to the value of b.
// If b is larger than len(h), b will be cropped from the left.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > len(h) {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// IsZero reports whether the hash is all zeroes.
func (h Hash) IsZero() bool { return h == Hash{} }

/////////// Address

// Address represents the raw 32 byte public key of an account. Its textual
// form is the prefixed, checksummed base-32 encoding.
type Address [AddressLength]byte

// BytesToAddress sets b to address.
// If b is larger than len(a), b will be cropped from the left.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// HexToAddress returns Address with byte values of s.
// If s is larger than len(a), s will be cropped from the left.
func HexToAddress(s string) Address { return BytesToAddress(FromHex(s)) }

// DecodeAddress parses the textual form of an address back into the raw
// public key, verifying the prefix, the alphabet and the embedded checksum.
func DecodeAddress(s string) (Address, error) {
	if len(s) != EncodedAddressLength {
		return Address{}, fmt.Errorf("%w: length %d, want %d", ErrAddressFormat, len(s), EncodedAddressLength)
	}
	if s[:len(AddressPrefix)] != AddressPrefix {
		return Address{}, fmt.Errorf("%w: missing %q prefix", ErrAddressFormat, AddressPrefix)
	}
	body := s[len(AddressPrefix) : len(AddressPrefix)+addressBodyLength]
	suffix := s[len(AddressPrefix)+addressBodyLength:]

	key, err := base32.DecodeString(body)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrAddressFormat, err)
	}
	check, err := base32.DecodeString(suffix)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrAddressFormat, err)
	}
	var a Address
	copy(a[:], key)
	if !bytes.Equal(check, a.Checksum()) {
		return Address{}, ErrAddressChecksum
	}
	return a, nil
}

// MustDecodeAddress parses the textual form of an address. It panics for
// invalid input.
func MustDecodeAddress(s string) Address {
	a, err := DecodeAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsValidAddress reports whether s parses as an address with a good checksum.
func IsValidAddress(s string) bool {
	_, err := DecodeAddress(s)
	return err == nil
}

// Checksum returns the 5 byte digest embedded in the textual form of the
// address: the Blake2b-5 hash of the public key with its byte order reversed.
func (a Address) Checksum() []byte {
	h, _ := blake2b.New(AddressChecksumLength, nil)
	h.Write(a[:])
	sum := h.Sum(nil)
	for i, j := 0, len(sum)-1; i < j; i, j = i+1, j-1 {
		sum[i], sum[j] = sum[j], sum[i]
	}
	return sum
}

// String returns the prefixed, checksummed base-32 form of the address.
func (a Address) String() string {
	return AddressPrefix + base32.EncodeToString(a[:]) + base32.EncodeToString(a.Checksum())
}

// Bytes gets the byte representation of the underlying address.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns the raw public key as a hex string.
func (a Address) Hex() string { return hexutil.Encode(a[:]) }

// Hash converts an address to a hash by filling it with zeroes on the left.
// For open blocks the account itself is the work root.
func (a Address) Hash() Hash { return BytesToHash(a[:]) }

// Format implements fmt.Formatter.
// Address supports the %v, %s, %q, %x and %X format verbs.
func (a Address) Format(s fmt.State, c rune) {
	switch c {
	case 'x':
		fmt.Fprintf(s, "%x", a[:])
	case 'X':
		fmt.Fprintf(s, "%X", a[:])
	case 'v', 's':
		s.Write([]byte(a.String()))
	case 'q':
		fmt.Fprintf(s, "%q", a.String())
	default:
		fmt.Fprintf(s, "%%!%c(address=%x)", c, a)
	}
}

// SetBytes sets the address to the value of b.
// If b is larger than len(a), b will be cropped from the left.
func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// MarshalText returns the textual address form of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses an address in its textual form.
func (a *Address) UnmarshalText(input []byte) error {
	dec, err := DecodeAddress(string(input))
	if err != nil {
		return err
	}
	*a = dec
	return nil
}

// UnmarshalJSON parses an address in its textual form.
func (a *Address) UnmarshalJSON(input []byte) error {
	if len(input) < 2 || input[0] != '"' || input[len(input)-1] != '"' {
		return fmt.Errorf("%w: non-string value", ErrAddressFormat)
	}
	return a.UnmarshalText(input[1 : len(input)-1])
}

/////////// Signature

// Signature represents the 64 byte signature over a block hash.
type Signature [SignatureLength]byte

// BytesToSignature sets b to signature.
// If b is larger than len(s), b will be cropped from the left.
func BytesToSignature(b []byte) Signature {
	var s Signature
	if len(b) > len(s) {
		b = b[len(b)-SignatureLength:]
	}
	copy(s[SignatureLength-len(b):], b)
	return s
}

// HexToSignature sets byte representation of str to signature.
func HexToSignature(str string) Signature { return BytesToSignature(FromHex(str)) }

// Bytes gets the byte representation of the underlying signature.
func (s Signature) Bytes() []byte { return s[:] }

// Hex converts a signature to a hex string.
func (s Signature) Hex() string { return hexutil.Encode(s[:]) }

// String implements fmt.Stringer.
func (s Signature) String() string { return s.Hex() }

// MarshalText returns the hex representation of s.
func (s Signature) MarshalText() ([]byte, error) {
	return []byte(s.Hex()), nil
}

// UnmarshalText parses a signature in hex syntax.
func (s *Signature) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Signature", input, s[:])
}

/////////// Work

// Work is the 8 byte proof-of-work witness carried on a block. Computing it
// is the miner's concern; the codec only transports it, and it is never part
// of the hashed fields.
type Work [WorkLength]byte

// EncodeWork converts the given integer to a work witness.
func EncodeWork(i uint64) Work {
	var w Work
	binary.BigEndian.PutUint64(w[:], i)
	return w
}

// Uint64 returns the integer value of a work witness.
func (w Work) Uint64() uint64 { return binary.BigEndian.Uint64(w[:]) }

// Hex converts a work witness to a hex string.
func (w Work) Hex() string { return hexutil.Encode(w[:]) }

// String implements fmt.Stringer.
func (w Work) String() string { return w.Hex() }

// MarshalText returns the hex representation of w.
func (w Work) MarshalText() ([]byte, error) {
	return []byte(w.Hex()), nil
}

// UnmarshalText parses a work witness in hex syntax.
func (w *Work) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Work", input, w[:])
}
