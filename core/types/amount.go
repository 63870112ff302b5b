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

package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/holiman/uint256"

	"github.com/raiblocks/go-raiblocks/common/hexutil"
)

// AmountLength is the width of a balance in its canonical big-endian form.
const AmountLength = 16

// ErrAmountRange is returned when a value does not fit in 128 bits or an
// arithmetic result would leave that range.
var ErrAmountRange = errors.New("amount out of 128 bit range")

// Amount is an account balance: an unsigned 128 bit integer whose canonical
// form is 16 big-endian bytes. Send blocks hash the canonical form directly.
type Amount struct {
	n uint256.Int
}

// AmountFromUint64 returns the amount with the given integer value.
func AmountFromUint64(v uint64) Amount {
	var a Amount
	a.n.SetUint64(v)
	return a
}

// AmountFromHex parses an amount from up to 32 hex digits. Shorter input is
// interpreted as if left-padded with zeroes.
func AmountFromHex(input string) (Amount, error) {
	if input == "" || len(input) > 2*AmountLength {
		return Amount{}, fmt.Errorf("%w: %d hex digits", ErrAmountRange, len(input))
	}
	if len(input)%2 != 0 {
		input = "0" + input
	}
	b, err := hexutil.Decode(input)
	if err != nil {
		return Amount{}, err
	}
	return AmountFromBytes(b)
}

// AmountFromBytes parses an amount from up to 16 big-endian bytes.
func AmountFromBytes(b []byte) (Amount, error) {
	if len(b) > AmountLength {
		return Amount{}, fmt.Errorf("%w: %d bytes", ErrAmountRange, len(b))
	}
	var a Amount
	a.n.SetBytes(b)
	return a, nil
}

// Bytes16 returns the canonical 16 byte big-endian form of the amount.
func (a Amount) Bytes16() [AmountLength]byte {
	full := a.n.Bytes32()
	var out [AmountLength]byte
	copy(out[:], full[AmountLength:])
	return out
}

// Hex returns the canonical 32 digit hex form of the amount.
func (a Amount) Hex() string {
	b := a.Bytes16()
	return hexutil.Encode(b[:])
}

// String implements fmt.Stringer.
func (a Amount) String() string { return a.Hex() }

// Uint64 returns the low 64 bits of the amount.
func (a Amount) Uint64() uint64 { return a.n.Uint64() }

// Cmp compares a and b, returning -1, 0 or +1.
func (a Amount) Cmp(b Amount) int { return a.n.Cmp(&b.n) }

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool { return a.n.IsZero() }

// Add returns a+b, or ErrAmountRange if the sum leaves 128 bits.
func (a Amount) Add(b Amount) (Amount, error) {
	var r Amount
	r.n.Add(&a.n, &b.n)
	if r.n.BitLen() > 8*AmountLength {
		return Amount{}, ErrAmountRange
	}
	return r, nil
}

// Sub returns a-b, or ErrAmountRange if b exceeds a.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.n.Lt(&b.n) {
		return Amount{}, ErrAmountRange
	}
	var r Amount
	r.n.Sub(&a.n, &b.n)
	return r, nil
}

// MarshalText returns the canonical hex form of the amount.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText parses an amount in hex syntax. Case is ignored.
func (a *Amount) UnmarshalText(input []byte) error {
	dec, err := AmountFromHex(strings.TrimSpace(string(input)))
	if err != nil {
		return err
	}
	*a = dec
	return nil
}
