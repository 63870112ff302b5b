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

package wallet

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/raiblocks/go-raiblocks/common"
	"github.com/raiblocks/go-raiblocks/core/types"
	"github.com/raiblocks/go-raiblocks/crypto"
)

// Reference data: the account at index 0 of this seed encodes to the given
// address.
const (
	refSeed    = "9F0E444C69F77A49BD0BE89DB92C38FE713E0963165CCA12FAF5712D7657120F"
	refAddress = "xrb_3yiqftdf6t4s9nwhtpjpqr1sd5yinyupa3m54fh7c1mxy53bkpecczshr4uy"
)

func TestDeriveAccountReference(t *testing.T) {
	seed, err := ParseSeed(refSeed)
	require.NoError(t, err)

	account, err := DeriveAccount(seed, 0)
	require.NoError(t, err)

	require.Equal(t, uint32(0), account.Index)
	require.Len(t, account.PrivateKey, crypto.SeedLength)
	require.Len(t, account.PublicKey, common.AddressLength)
	require.Equal(t, refAddress, account.Address.String())
}

func TestDeriveAccountDeterministic(t *testing.T) {
	seed, err := ParseSeed(refSeed)
	require.NoError(t, err)

	a, err := DeriveAccount(seed, 7)
	require.NoError(t, err)
	b, err := DeriveAccount(seed, 7)
	require.NoError(t, err)
	require.Equal(t, a.Address, b.Address)
	require.True(t, bytes.Equal(a.PrivateKey, b.PrivateKey))
}

func TestDeriveAccountsMatchesSequential(t *testing.T) {
	seed, err := ParseSeed(refSeed)
	require.NoError(t, err)

	accounts, err := DeriveAccounts(seed, 0, 16)
	require.NoError(t, err)
	require.Len(t, accounts, 16)

	addresses := map[common.Address]bool{}
	for i, a := range accounts {
		want, err := DeriveAccount(seed, uint32(i))
		require.NoError(t, err)
		if diff := cmp.Diff(want, a); diff != "" {
			t.Errorf("account %d mismatch (-want +got):\n%s", i, diff)
		}
		require.False(t, addresses[a.Address], "index %d repeats an address", i)
		addresses[a.Address] = true
	}
}

func TestParseSeedErrors(t *testing.T) {
	for _, input := range []string{"", "abcd", refSeed + "00", "zz" + refSeed[2:]} {
		if _, err := ParseSeed(input); !errors.Is(err, ErrSeedFormat) {
			t.Errorf("ParseSeed(%q) error = %v, want %v", input, err, ErrSeedFormat)
		}
	}
}

func TestNewSeedIsRandom(t *testing.T) {
	a, err := NewSeed()
	require.NoError(t, err)
	b, err := NewSeed()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestMnemonicRoundtrip(t *testing.T) {
	seed, err := ParseSeed(refSeed)
	require.NoError(t, err)

	mnemonic, err := seed.Mnemonic()
	require.NoError(t, err)
	// 256 bits of entropy make a 24 word mnemonic.
	require.Len(t, strings.Fields(mnemonic), 24)

	back, err := SeedFromMnemonic(mnemonic)
	require.NoError(t, err)
	require.Equal(t, seed, back)
}

func TestSeedFromMnemonicRejectsGarbage(t *testing.T) {
	if _, err := SeedFromMnemonic("not a mnemonic at all"); err == nil {
		t.Error("expected error")
	}
}

func TestSignBlock(t *testing.T) {
	seed, err := ParseSeed(refSeed)
	require.NoError(t, err)
	account, err := DeriveAccount(seed, 0)
	require.NoError(t, err)

	balance, err := types.AmountFromHex("0000024840846ED118ABCC068DFFFFFF")
	require.NoError(t, err)
	b, err := types.NewSendBlock(
		common.HexToHash("1E1EB1C48A42FE1EE245342D8E66FEE5761AEB840FFFE9ACC10199AF6F73939E"),
		"xrb_13cwinwfd8uq65nj5m3hhrt5tmcjmk4a3zu7d737311er1eg6jtsqxwdp4oc",
		balance,
	)
	require.NoError(t, err)

	require.NoError(t, account.SignBlock(b))
	require.True(t, b.VerifySignature(account.Address))

	// Another account under the same seed must not verify the block.
	other, err := DeriveAccount(seed, 1)
	require.NoError(t, err)
	require.False(t, b.VerifySignature(other.Address))
}

func TestAccountZero(t *testing.T) {
	seed, err := ParseSeed(refSeed)
	require.NoError(t, err)
	account, err := DeriveAccount(seed, 0)
	require.NoError(t, err)

	account.Zero()
	require.Equal(t, make([]byte, crypto.SeedLength), account.PrivateKey)
}
