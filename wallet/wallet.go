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

// Package wallet derives account keypairs from a master seed. The wallet
// holds no state beyond the seed itself: every account is a pure function of
// (seed, index) and is derived on demand.
package wallet

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/sync/errgroup"

	"github.com/raiblocks/go-raiblocks/common"
	"github.com/raiblocks/go-raiblocks/common/hexutil"
	"github.com/raiblocks/go-raiblocks/core/types"
	"github.com/raiblocks/go-raiblocks/crypto"
	"github.com/raiblocks/go-raiblocks/crypto/ed25519"
)

// Seed is the 256-bit secret all of a wallet's accounts derive from.
type Seed [crypto.SeedLength]byte

// ErrSeedFormat is returned when parsing a seed from text fails.
var ErrSeedFormat = errors.New("seed must be 64 hex digits")

// NewSeed generates a random seed from the system entropy source.
func NewSeed() (Seed, error) {
	var s Seed
	if _, err := rand.Read(s[:]); err != nil {
		return Seed{}, err
	}
	return s, nil
}

// ParseSeed parses a seed from its 64 digit hex form.
func ParseSeed(input string) (Seed, error) {
	b, err := hexutil.Decode(input)
	if err != nil {
		return Seed{}, fmt.Errorf("%w: %v", ErrSeedFormat, err)
	}
	if len(b) != crypto.SeedLength {
		return Seed{}, ErrSeedFormat
	}
	var s Seed
	copy(s[:], b)
	common.ZeroBytes(b)
	return s, nil
}

// SeedFromMnemonic recovers a seed from its 24 word BIP-39 mnemonic form.
func SeedFromMnemonic(mnemonic string) (Seed, error) {
	entropy, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return Seed{}, err
	}
	if len(entropy) != crypto.SeedLength {
		return Seed{}, fmt.Errorf("mnemonic carries %d bytes of entropy, want %d", len(entropy), crypto.SeedLength)
	}
	var s Seed
	copy(s[:], entropy)
	common.ZeroBytes(entropy)
	return s, nil
}

// Mnemonic renders the seed as a 24 word BIP-39 mnemonic.
func (s Seed) Mnemonic() (string, error) {
	return bip39.NewMnemonic(s[:])
}

// Hex returns the 64 digit hex form of the seed. The seed is the caller's
// secret; do not write the result anywhere that outlives the wallet.
func (s Seed) Hex() string { return hexutil.Encode(s[:]) }

// Zero wipes the seed in place.
func (s *Seed) Zero() { common.ZeroBytes(s[:]) }

// Account is one derived keypair of a wallet. PrivateKey is secret; call
// Zero once the account is no longer needed.
type Account struct {
	Index      uint32
	PrivateKey []byte
	PublicKey  []byte
	Address    common.Address
}

// DeriveAccount derives the account at the given index: the private key is
// the Blake2b hash of seed and big-endian index, the public key follows from
// the signature scheme, and the address is the encoded public key.
func DeriveAccount(seed Seed, index uint32) (*Account, error) {
	priv, err := crypto.DeriveKey(seed[:], index)
	if err != nil {
		return nil, err
	}
	pub, err := ed25519.PublicKey(priv)
	if err != nil {
		return nil, err
	}
	return &Account{
		Index:      index,
		PrivateKey: priv,
		PublicKey:  pub,
		Address:    common.BytesToAddress(pub),
	}, nil
}

// DeriveAccounts derives count consecutive accounts starting at start.
// Derivation is pure and independent per index, so the accounts are computed
// concurrently.
func DeriveAccounts(seed Seed, start uint32, count int) ([]*Account, error) {
	accounts := make([]*Account, count)
	var g errgroup.Group
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			a, err := DeriveAccount(seed, start+uint32(i))
			if err != nil {
				return err
			}
			accounts[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return accounts, nil
}

// SignBlock signs the block's hash with the account key and attaches the
// signature.
func (a *Account) SignBlock(b *types.Block) error {
	return b.Sign(a.PrivateKey)
}

// Zero wipes the account's private key in place.
func (a *Account) Zero() {
	common.ZeroBytes(a.PrivateKey)
}
