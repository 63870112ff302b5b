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
	"encoding/json"
	"fmt"

	"github.com/raiblocks/go-raiblocks/common"
)

// blockJSON is the wire form shared by all four variants. Hashes, balances,
// work and signatures travel as hex; account fields travel in their textual
// address form, so a bad address fails during decoding, before any hashing.
type blockJSON struct {
	Type           string            `json:"type"`
	Previous       *common.Hash      `json:"previous,omitempty"`
	Destination    *common.Address   `json:"destination,omitempty"`
	Balance        *Amount           `json:"balance,omitempty"`
	Source         *common.Hash      `json:"source,omitempty"`
	Representative *common.Address   `json:"representative,omitempty"`
	Account        *common.Address   `json:"account,omitempty"`
	Work           *common.Work      `json:"work,omitempty"`
	Signature      *common.Signature `json:"signature,omitempty"`
}

// MarshalJSON encodes the block in its wire form.
func (b *Block) MarshalJSON() ([]byte, error) {
	var enc blockJSON
	enc.Type = b.Type().String()

	switch d := b.inner.(type) {
	case *SendBlock:
		enc.Previous = &d.Previous
		enc.Destination = &d.Destination
		enc.Balance = &d.Balance
	case *ReceiveBlock:
		enc.Previous = &d.Previous
		enc.Source = &d.Source
	case *ChangeBlock:
		enc.Previous = &d.Previous
		enc.Representative = &d.Representative
	case *OpenBlock:
		enc.Source = &d.Source
		enc.Representative = &d.Representative
		enc.Account = &d.Account
	default:
		return nil, ErrUnknownBlockType
	}

	w, sig := b.Work(), b.Signature()
	if w != (common.Work{}) {
		enc.Work = &w
	}
	if sig != (common.Signature{}) {
		enc.Signature = &sig
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON decodes a block from its wire form, dispatching on the type
// tag. All hashed fields of the variant are required.
func (b *Block) UnmarshalJSON(input []byte) error {
	var dec blockJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	typ, err := BlockTypeFromString(dec.Type)
	if err != nil {
		return err
	}

	var inner blockData
	switch typ {
	case SendBlockType:
		d := new(SendBlock)
		if dec.Previous == nil {
			return missingField("previous", typ)
		}
		if dec.Destination == nil {
			return missingField("destination", typ)
		}
		if dec.Balance == nil {
			return missingField("balance", typ)
		}
		d.Previous, d.Destination, d.Balance = *dec.Previous, *dec.Destination, *dec.Balance
		inner = d
	case ReceiveBlockType:
		d := new(ReceiveBlock)
		if dec.Previous == nil {
			return missingField("previous", typ)
		}
		if dec.Source == nil {
			return missingField("source", typ)
		}
		d.Previous, d.Source = *dec.Previous, *dec.Source
		inner = d
	case ChangeBlockType:
		d := new(ChangeBlock)
		if dec.Previous == nil {
			return missingField("previous", typ)
		}
		if dec.Representative == nil {
			return missingField("representative", typ)
		}
		d.Previous, d.Representative = *dec.Previous, *dec.Representative
		inner = d
	case OpenBlockType:
		d := new(OpenBlock)
		if dec.Source == nil {
			return missingField("source", typ)
		}
		if dec.Representative == nil {
			return missingField("representative", typ)
		}
		if dec.Account == nil {
			return missingField("account", typ)
		}
		d.Source, d.Representative, d.Account = *dec.Source, *dec.Representative, *dec.Account
		inner = d
	}

	if dec.Work != nil {
		inner.setWork(*dec.Work)
	}
	if dec.Signature != nil {
		inner.setSignature(*dec.Signature)
	}
	b.inner = inner
	return nil
}

func missingField(field string, typ BlockType) error {
	return fmt.Errorf("missing required field %q for %s block", field, typ)
}

// UnmarshalBlockJSON decodes a block of any variant from its wire form.
func UnmarshalBlockJSON(input []byte) (*Block, error) {
	b := new(Block)
	if err := b.UnmarshalJSON(input); err != nil {
		return nil, err
	}
	return b, nil
}
