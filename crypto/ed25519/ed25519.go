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

// Package ed25519 implements the ledger's signature scheme: Ed25519 with
// every internal SHA-512 invocation replaced by Blake2b-512.
//
// The substitution makes signatures incompatible with RFC 8032
// implementations on purpose; everything else (clamping, the deterministic
// nonce, the verification equation) follows the standard construction.
// Private keys are the 32 byte account keys derived from a seed, not the
// 64 byte expanded form.
package ed25519

import (
	"errors"

	"github.com/oasisprotocol/curve25519-voi/curve"
	"github.com/oasisprotocol/curve25519-voi/curve/scalar"

	"github.com/raiblocks/go-raiblocks/common"
	"github.com/raiblocks/go-raiblocks/crypto"
)

const (
	// PublicKeySize is the size, in bytes, of public keys.
	PublicKeySize = 32
	// PrivateKeySize is the size, in bytes, of private keys.
	PrivateKeySize = 32
	// SignatureSize is the size, in bytes, of signatures.
	SignatureSize = 64
)

var (
	// ErrPrivateKeyLength is returned when a private key is not 32 bytes.
	ErrPrivateKeyLength = errors.New("ed25519: bad private key length")
	// ErrPublicKeyLength is returned when a public key is not 32 bytes.
	ErrPublicKeyLength = errors.New("ed25519: bad public key length")
)

// expandKey runs the private key through Blake2b-512 and splits the result
// into the clamped secret scalar and the 32 byte nonce prefix.
func expandKey(priv []byte) (*scalar.Scalar, []byte, error) {
	h := crypto.Blake2b512(priv)
	defer common.ZeroBytes(h)

	var clamped [32]byte
	defer common.ZeroBytes(clamped[:])
	copy(clamped[:], h[:32])
	clamped[0] &= 248
	clamped[31] &= 127
	clamped[31] |= 64

	a, err := scalar.New().SetBits(clamped[:])
	if err != nil {
		return nil, nil, err
	}
	prefix := make([]byte, 32)
	copy(prefix, h[32:])
	return a, prefix, nil
}

func compressedBasepointMul(a *scalar.Scalar) *curve.CompressedEdwardsY {
	var p curve.EdwardsPoint
	p.MulBasepoint(curve.ED25519_BASEPOINT_TABLE, a)
	return curve.NewCompressedEdwardsY().SetEdwardsPoint(&p)
}

// PublicKey derives the public key matching the given 32 byte private key.
func PublicKey(priv []byte) ([]byte, error) {
	if len(priv) != PrivateKeySize {
		return nil, ErrPrivateKeyLength
	}
	a, prefix, err := expandKey(priv)
	if err != nil {
		return nil, err
	}
	common.ZeroBytes(prefix)

	A := compressedBasepointMul(a)
	pub := make([]byte, PublicKeySize)
	copy(pub, A[:])
	return pub, nil
}

// Sign produces a deterministic signature of message with the given private
// key. For ledger entries message is always a 32 byte block hash; the raw
// block fields are never signed directly.
func Sign(priv, message []byte) ([]byte, error) {
	if len(priv) != PrivateKeySize {
		return nil, ErrPrivateKeyLength
	}
	a, prefix, err := expandKey(priv)
	if err != nil {
		return nil, err
	}
	defer common.ZeroBytes(prefix)

	A := compressedBasepointMul(a)

	// The nonce is the hash of the expansion's second half and the message,
	// per the deterministic scheme. No randomness enters signing.
	r, err := scalar.New().SetBytesModOrderWide(crypto.Blake2b512(prefix, message))
	if err != nil {
		return nil, err
	}
	R := compressedBasepointMul(r)

	k, err := scalar.New().SetBytesModOrderWide(crypto.Blake2b512(R[:], A[:], message))
	if err != nil {
		return nil, err
	}
	// S = k*a + r mod l.
	S := scalar.New().Mul(k, a)
	S.Add(S, r)

	sig := make([]byte, SignatureSize)
	copy(sig[:32], R[:])
	if err := S.ToBytes(sig[32:]); err != nil {
		return nil, err
	}
	return sig, nil
}

// Verify reports whether sig is a valid signature of message by pub.
// Malformed keys, non-canonical scalars and failed equations all yield
// false; verification never returns an error.
func Verify(pub, message, sig []byte) bool {
	if len(pub) != PublicKeySize || len(sig) != SignatureSize {
		return false
	}
	Ac, err := curve.NewCompressedEdwardsY().SetBytes(pub)
	if err != nil {
		return false
	}
	var A curve.EdwardsPoint
	if _, err := A.SetCompressedY(Ac); err != nil {
		return false
	}
	S, err := scalar.New().SetCanonicalBytes(sig[32:])
	if err != nil {
		return false
	}
	k, err := scalar.New().SetBytesModOrderWide(crypto.Blake2b512(sig[:32], pub, message))
	if err != nil {
		return false
	}

	// Cofactorless check: R == [S]B - [k]A, compared in compressed form.
	var negA curve.EdwardsPoint
	negA.Neg(&A)
	var R curve.EdwardsPoint
	R.DoubleScalarMulBasepointVartime(k, &negA, S)
	Rc := curve.NewCompressedEdwardsY().SetEdwardsPoint(&R)

	expected, err := curve.NewCompressedEdwardsY().SetBytes(sig[:32])
	if err != nil {
		return false
	}
	return Rc.Equal(expected) == 1
}
