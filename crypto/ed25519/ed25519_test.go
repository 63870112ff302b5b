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

package ed25519

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/raiblocks/go-raiblocks/common"
	"github.com/raiblocks/go-raiblocks/crypto"
)

func TestPublicKeyReferenceVector(t *testing.T) {
	// The account at index 0 of the reference seed must land on the known
	// address, which pins the clamped scalar and basepoint multiply.
	seed := common.FromHex("9F0E444C69F77A49BD0BE89DB92C38FE713E0963165CCA12FAF5712D7657120F")
	priv, err := crypto.DeriveKey(seed, 0)
	if err != nil {
		t.Fatal(err)
	}
	pub, err := PublicKey(priv)
	if err != nil {
		t.Fatal(err)
	}
	want := common.MustDecodeAddress("xrb_3yiqftdf6t4s9nwhtpjpqr1sd5yinyupa3m54fh7c1mxy53bkpecczshr4uy")
	if !bytes.Equal(pub, want.Bytes()) {
		t.Errorf("public key = %x, want %x", pub, want.Bytes())
	}
}

func testKeypair(t *testing.T, seedByte byte) ([]byte, []byte) {
	t.Helper()
	priv := bytes.Repeat([]byte{seedByte}, PrivateKeySize)
	pub, err := PublicKey(priv)
	if err != nil {
		t.Fatal(err)
	}
	return priv, pub
}

func TestPublicKeyDeterministic(t *testing.T) {
	priv, pub := testKeypair(t, 0x42)
	again, err := PublicKey(priv)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pub, again) {
		t.Error("public key derivation is not deterministic")
	}
	if len(pub) != PublicKeySize {
		t.Errorf("public key length %d", len(pub))
	}
}

func TestPublicKeyLengthCheck(t *testing.T) {
	for _, n := range []int{0, 16, 31, 33, 64} {
		if _, err := PublicKey(make([]byte, n)); err != ErrPrivateKeyLength {
			t.Errorf("length %d: error = %v, want %v", n, err, ErrPrivateKeyLength)
		}
	}
}

func TestSignVerify(t *testing.T) {
	priv, pub := testKeypair(t, 0x42)
	message := crypto.Blake2b256([]byte("a block"))

	sig, err := Sign(priv, message)
	if err != nil {
		t.Fatal(err)
	}
	if len(sig) != SignatureSize {
		t.Fatalf("signature length %d", len(sig))
	}
	if !Verify(pub, message, sig) {
		t.Fatal("valid signature rejected")
	}

	// Signing is deterministic: no randomness beyond the hash-derived nonce.
	sig2, err := Sign(priv, message)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(sig, sig2) {
		t.Error("signatures of the same message differ")
	}
}

func TestVerifyRejectsBitFlips(t *testing.T) {
	priv, pub := testKeypair(t, 0x07)
	message := crypto.Blake2b256([]byte("another block"))
	sig, err := Sign(priv, message)
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(99))
	flip := func(b []byte) []byte {
		c := append([]byte{}, b...)
		i := rng.Intn(len(c))
		c[i] ^= 1 << uint(rng.Intn(8))
		return c
	}

	for i := 0; i < 32; i++ {
		if Verify(pub, flip(message), sig) {
			t.Fatal("flipped message verified")
		}
		if Verify(pub, message, flip(sig)) {
			t.Fatal("flipped signature verified")
		}
		if Verify(flip(pub), message, sig) {
			t.Fatal("flipped public key verified")
		}
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	priv, _ := testKeypair(t, 0x01)
	_, otherPub := testKeypair(t, 0x02)
	message := crypto.Blake2b256([]byte("block"))
	sig, err := Sign(priv, message)
	if err != nil {
		t.Fatal(err)
	}
	if Verify(otherPub, message, sig) {
		t.Error("signature verified under the wrong key")
	}
}

func TestVerifyRejectsMalformedInput(t *testing.T) {
	priv, pub := testKeypair(t, 0x33)
	message := crypto.Blake2b256([]byte("block"))
	sig, err := Sign(priv, message)
	if err != nil {
		t.Fatal(err)
	}

	if Verify(pub[:31], message, sig) {
		t.Error("short public key verified")
	}
	if Verify(pub, message, sig[:63]) {
		t.Error("short signature verified")
	}
	// Non-canonical scalar: set the top bit of S.
	bad := append([]byte{}, sig...)
	bad[63] |= 0x80
	if Verify(pub, message, bad) {
		t.Error("non-canonical S verified")
	}
}

func TestSignLengthCheck(t *testing.T) {
	if _, err := Sign(make([]byte, 16), []byte("m")); err != ErrPrivateKeyLength {
		t.Errorf("error = %v, want %v", err, ErrPrivateKeyLength)
	}
}
