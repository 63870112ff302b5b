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

package base32

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
)

func TestEncodeKnown(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		// 8 bits left-pad to 10: two 5-bit groups.
		{"zero byte", []byte{0x00}, "11"},
		{"all ones byte", []byte{0xff}, "9z"},
		// 40 bits need no padding.
		{"five zero bytes", make([]byte, 5), "11111111"},
		{"five ff bytes", bytes.Repeat([]byte{0xff}, 5), "zzzzzzzz"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeToString(tt.in); got != tt.want {
				t.Errorf("EncodeToString(%x) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodedLengths(t *testing.T) {
	// The two shapes the address codec uses: 32-byte keys and 5-byte
	// checksums.
	key := make([]byte, 32)
	if got := len(EncodeToString(key)); got != 52 {
		t.Errorf("32-byte input encodes to %d characters, want 52", got)
	}
	sum := make([]byte, 5)
	if got := len(EncodeToString(sum)); got != 8 {
		t.Errorf("5-byte input encodes to %d characters, want 8", got)
	}
}

func TestRoundtrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, size := range []int{1, 2, 5, 16, 32, 64} {
		for i := 0; i < 50; i++ {
			in := make([]byte, size)
			rng.Read(in)
			dec, err := DecodeString(EncodeToString(in))
			if err != nil {
				t.Fatalf("size %d: decode error: %v", size, err)
			}
			if !bytes.Equal(dec, in) {
				t.Fatalf("size %d: round trip mismatch:\n  got:  %x\n  want: %x", size, dec, in)
			}
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"excluded digit 0", "10"},
		{"excluded digit 2", "12"},
		{"excluded letter l", "1l"},
		{"excluded letter v", "1v"},
		{"upper case", "1A"},
		{"non-zero padding", "z1"},
		{"whole character of padding", strings.Repeat("1", 6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeString(tt.input); err == nil {
				t.Errorf("DecodeString(%q): expected error", tt.input)
			}
		})
	}
}

func TestAlphabetExcludesAmbiguous(t *testing.T) {
	for _, c := range "02lv" {
		if strings.ContainsRune(charset, c) {
			t.Errorf("alphabet must not contain %q", c)
		}
	}
	// 'o' stays in the alphabet; encoded addresses use it.
	if !strings.ContainsRune(charset, 'o') {
		t.Error("alphabet must contain 'o'")
	}
	if len(charset) != 32 {
		t.Errorf("alphabet has %d symbols, want 32", len(charset))
	}
}
