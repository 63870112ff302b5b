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

// Package types contains the four ledger entry variants of an account chain
// and their canonical hashing and signing.
package types

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/raiblocks/go-raiblocks/common"
	"github.com/raiblocks/go-raiblocks/crypto"
	"github.com/raiblocks/go-raiblocks/crypto/ed25519"
)

// BlockType identifies one of the four ledger entry variants.
type BlockType uint8

const (
	SendBlockType BlockType = iota + 1
	ReceiveBlockType
	ChangeBlockType
	OpenBlockType
)

// ErrUnknownBlockType is returned when block data carries a type tag outside
// the four variants.
var ErrUnknownBlockType = errors.New("unknown block type")

// String returns the wire name of the block type.
func (t BlockType) String() string {
	switch t {
	case SendBlockType:
		return "send"
	case ReceiveBlockType:
		return "receive"
	case ChangeBlockType:
		return "change"
	case OpenBlockType:
		return "open"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// BlockTypeFromString maps a wire name back to its block type.
func BlockTypeFromString(s string) (BlockType, error) {
	switch s {
	case "send":
		return SendBlockType, nil
	case "receive":
		return ReceiveBlockType, nil
	case "change":
		return ChangeBlockType, nil
	case "open":
		return OpenBlockType, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBlockType, s)
	}
}

// Block is a single ledger entry of an account chain. Its canonical hash
// covers the variant's fixed-order fields and nothing else; signature and
// work ride along unhashed.
type Block struct {
	inner blockData

	// cache of the canonical hash
	hash atomic.Value
}

// blockData is satisfied by the four variant payloads.
type blockData interface {
	blockType() BlockType
	previous() common.Hash
	root() common.Hash
	hashTo(st crypto.BlakeState)
	signature() common.Signature
	setSignature(sig common.Signature)
	work() common.Work
	setWork(w common.Work)
	copy() blockData
}

// NewBlock creates a block from a variant payload. The payload is deep
// copied, so later changes to it do not disturb the cached hash.
func NewBlock(inner blockData) *Block {
	b := new(Block)
	b.inner = inner.copy()
	return b
}

// Type returns the variant of the block.
func (b *Block) Type() BlockType { return b.inner.blockType() }

// Hash returns the canonical Blake2b hash of the block's ordered fields.
// The first call computes it; the value is cached because blocks are
// immutable once hashed.
func (b *Block) Hash() common.Hash {
	if hash := b.hash.Load(); hash != nil {
		return hash.(common.Hash)
	}
	st := crypto.NewBlakeState(crypto.DigestLength)
	b.inner.hashTo(st)
	var h common.Hash
	st.Sum(h[:0])
	b.hash.Store(h)
	return h
}

// Previous returns the hash of the preceding block on the account chain,
// or the zero hash for an open block.
func (b *Block) Previous() common.Hash { return b.inner.previous() }

// Root returns the work root of the block: the previous hash, or the
// account public key for an open block.
func (b *Block) Root() common.Hash { return b.inner.root() }

// Signature returns the signature carried on the block.
func (b *Block) Signature() common.Signature { return b.inner.signature() }

// Work returns the proof-of-work witness carried on the block.
func (b *Block) Work() common.Work { return b.inner.work() }

// SetWork attaches a proof-of-work witness. Work is not part of the hashed
// fields, so this is safe after hashing.
func (b *Block) SetWork(w common.Work) { b.inner.setWork(w) }

// Sign signs the block hash with the given 32 byte private key and attaches
// the signature. The private key is read, never retained.
func (b *Block) Sign(priv []byte) error {
	h := b.Hash()
	sig, err := ed25519.Sign(priv, h[:])
	if err != nil {
		return err
	}
	b.inner.setSignature(common.BytesToSignature(sig))
	return nil
}

// VerifySignature reports whether the block's signature is valid for the
// given account.
func (b *Block) VerifySignature(account common.Address) bool {
	h := b.Hash()
	sig := b.inner.signature()
	return ed25519.Verify(account.Bytes(), h[:], sig[:])
}

/////////// Send

// SendBlock debits the account: it commits to the destination's public key
// and the balance remaining after the send.
type SendBlock struct {
	Previous    common.Hash
	Destination common.Address
	Balance     Amount

	Signature common.Signature
	Work      common.Work
}

// NewSendBlock builds a send block, decoding the textual destination
// address first. A bad address fails here, before anything is hashed.
func NewSendBlock(previous common.Hash, destination string, balance Amount) (*Block, error) {
	dest, err := common.DecodeAddress(destination)
	if err != nil {
		return nil, err
	}
	return NewBlock(&SendBlock{
		Previous:    previous,
		Destination: dest,
		Balance:     balance,
	}), nil
}

func (d *SendBlock) blockType() BlockType  { return SendBlockType }
func (d *SendBlock) previous() common.Hash { return d.Previous }
func (d *SendBlock) root() common.Hash     { return d.Previous }

func (d *SendBlock) hashTo(st crypto.BlakeState) {
	bal := d.Balance.Bytes16()
	st.Write(d.Previous[:])
	st.Write(d.Destination[:])
	st.Write(bal[:])
}

func (d *SendBlock) signature() common.Signature       { return d.Signature }
func (d *SendBlock) setSignature(sig common.Signature) { d.Signature = sig }
func (d *SendBlock) work() common.Work                 { return d.Work }
func (d *SendBlock) setWork(w common.Work)             { d.Work = w }

func (d *SendBlock) copy() blockData {
	cpy := *d
	return &cpy
}

/////////// Receive

// ReceiveBlock credits the account with a pending send, referencing the
// send block's hash.
type ReceiveBlock struct {
	Previous common.Hash
	Source   common.Hash

	Signature common.Signature
	Work      common.Work
}

// NewReceiveBlock builds a receive block.
func NewReceiveBlock(previous, source common.Hash) *Block {
	return NewBlock(&ReceiveBlock{
		Previous: previous,
		Source:   source,
	})
}

func (d *ReceiveBlock) blockType() BlockType  { return ReceiveBlockType }
func (d *ReceiveBlock) previous() common.Hash { return d.Previous }
func (d *ReceiveBlock) root() common.Hash     { return d.Previous }

func (d *ReceiveBlock) hashTo(st crypto.BlakeState) {
	st.Write(d.Previous[:])
	st.Write(d.Source[:])
}

func (d *ReceiveBlock) signature() common.Signature       { return d.Signature }
func (d *ReceiveBlock) setSignature(sig common.Signature) { d.Signature = sig }
func (d *ReceiveBlock) work() common.Work                 { return d.Work }
func (d *ReceiveBlock) setWork(w common.Work)             { d.Work = w }

func (d *ReceiveBlock) copy() blockData {
	cpy := *d
	return &cpy
}

/////////// Change

// ChangeBlock rotates the account's representative without moving funds.
type ChangeBlock struct {
	Previous       common.Hash
	Representative common.Address

	Signature common.Signature
	Work      common.Work
}

// NewChangeBlock builds a change block, decoding the textual representative
// address first.
func NewChangeBlock(previous common.Hash, representative string) (*Block, error) {
	rep, err := common.DecodeAddress(representative)
	if err != nil {
		return nil, err
	}
	return NewBlock(&ChangeBlock{
		Previous:       previous,
		Representative: rep,
	}), nil
}

func (d *ChangeBlock) blockType() BlockType  { return ChangeBlockType }
func (d *ChangeBlock) previous() common.Hash { return d.Previous }
func (d *ChangeBlock) root() common.Hash     { return d.Previous }

func (d *ChangeBlock) hashTo(st crypto.BlakeState) {
	st.Write(d.Previous[:])
	st.Write(d.Representative[:])
}

func (d *ChangeBlock) signature() common.Signature       { return d.Signature }
func (d *ChangeBlock) setSignature(sig common.Signature) { d.Signature = sig }
func (d *ChangeBlock) work() common.Work                 { return d.Work }
func (d *ChangeBlock) setWork(w common.Work)             { d.Work = w }

func (d *ChangeBlock) copy() blockData {
	cpy := *d
	return &cpy
}

/////////// Open

// OpenBlock is the first entry of an account chain. It has no previous
// hash; the account's own public key serves as the work root.
type OpenBlock struct {
	Source         common.Hash
	Representative common.Address
	Account        common.Address

	Signature common.Signature
	Work      common.Work
}

// NewOpenBlock builds an open block, decoding the textual representative
// and account addresses first.
func NewOpenBlock(source common.Hash, representative, account string) (*Block, error) {
	rep, err := common.DecodeAddress(representative)
	if err != nil {
		return nil, err
	}
	acct, err := common.DecodeAddress(account)
	if err != nil {
		return nil, err
	}
	return NewBlock(&OpenBlock{
		Source:         source,
		Representative: rep,
		Account:        acct,
	}), nil
}

func (d *OpenBlock) blockType() BlockType  { return OpenBlockType }
func (d *OpenBlock) previous() common.Hash { return common.Hash{} }
func (d *OpenBlock) root() common.Hash     { return d.Account.Hash() }

func (d *OpenBlock) hashTo(st crypto.BlakeState) {
	st.Write(d.Source[:])
	st.Write(d.Representative[:])
	st.Write(d.Account[:])
}

func (d *OpenBlock) signature() common.Signature       { return d.Signature }
func (d *OpenBlock) setSignature(sig common.Signature) { d.Signature = sig }
func (d *OpenBlock) work() common.Work                 { return d.Work }
func (d *OpenBlock) setWork(w common.Work)             { d.Work = w }

func (d *OpenBlock) copy() blockData {
	cpy := *d
	return &cpy
}
