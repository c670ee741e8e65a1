// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package tx

import (
	"bytes"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

var wireNames = map[string]string{
	"gas_price":                "gasPrice",
	"gas_limit":                "gas",
	"amount":                   "value",
	"destination":              "to",
	"max_priority_fee_per_gas": "maxPriorityFeePerGas",
	"max_fee_per_gas":          "maxFeePerGas",
	"access_list":              "accessList",
	"chain_id":                 "chainId",
}

var wireProps = map[string]bool{
	"chainId":              true,
	"from":                 true,
	"to":                   true,
	"gas":                  true,
	"gasPrice":             true,
	"value":                true,
	"data":                 true,
	"nonce":                true,
	"maxFeePerGas":         true,
	"maxPriorityFeePerGas": true,
	"accessList":           true,
}

// WireField is one JSON-RPC transaction field.
type WireField struct {
	Name  string
	Value interface{}
}

// WireFields is an ordered JSON-RPC view of a transaction. Numbers are
// *hexutil.Big, data is hexutil.Bytes, the destination is *common.Address
// (nil for contract creation) and the access list is []WireAccessTuple.
type WireFields []WireField

// WireAccessTuple is the JSON-RPC shape of an access list entry, with
// storage keys as numbers.
type WireAccessTuple struct {
	Address     common.Address `json:"address"`
	StorageKeys []*hexutil.Big `json:"storageKeys"`
}

func project(fields []field) WireFields {
	out := make(WireFields, 0, len(fields))
	for _, f := range fields {
		name := f.name
		if wire, ok := wireNames[name]; ok {
			name = wire
		}
		if !wireProps[name] {
			continue
		}
		out = append(out, WireField{Name: name, Value: wireValue(f.value)})
	}
	return out
}

func wireValue(v interface{}) interface{} {
	switch v := v.(type) {
	case *uint256.Int:
		return (*hexutil.Big)(v.ToBig())
	case []byte:
		return hexutil.Bytes(v)
	case *common.Address:
		return v
	case AccessList:
		tuples := make([]WireAccessTuple, len(v))
		for i, tuple := range v {
			keys := make([]*hexutil.Big, len(tuple.StorageKeys))
			for j, key := range tuple.StorageKeys {
				keys[j] = (*hexutil.Big)(key.Big())
			}
			tuples[i] = WireAccessTuple{Address: tuple.Address, StorageKeys: keys}
		}
		return tuples
	}
	return v
}

// Get returns the value of the named field.
func (w WireFields) Get(name string) (interface{}, bool) {
	for _, f := range w {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Names returns the field names in order.
func (w WireFields) Names() []string {
	names := make([]string, len(w))
	for i, f := range w {
		names[i] = f.Name
	}
	return names
}

// MarshalJSON encodes the fields as a JSON object, preserving their order.
func (w WireFields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range w {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
