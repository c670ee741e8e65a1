// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

// Package ledgertest provides an emulated Ledger Ethereum app for tests.
//
// Device answers every command of the Ethereum app the way firmware 9.9.9
// would, deriving keys from a BIP39 mnemonic and signing with secp256k1, so
// tests can recover and check the signer of everything it signs.
package ledgertest

import (
	"crypto/ecdsa"
	"encoding/binary"
	"encoding/hex"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"

	"github.com/luxfi/ledger-eth/apdu"
	"github.com/luxfi/ledger-eth/signature"
	"github.com/luxfi/ledger-eth/tx"
)

// Mnemonic is the well known development mnemonic the default device uses.
const Mnemonic = "test test test test test test test test test test test junk"

const (
	insGetAddress       = 0x02
	insSignTransaction  = 0x04
	insGetConfiguration = 0x06
	insSignMessage      = 0x08
	insSignTypedData    = 0x0c
)

// EmulatorVersion is the app version the emulator reports.
var EmulatorVersion = apdu.Version{Major: 9, Minor: 9, Patch: 9}

// Device is an emulated device. It is not safe for concurrent use.
type Device struct {
	// Version is reported by GET_CONFIGURATION.
	Version apdu.Version
	// Reject, when set, fails every signing command with this status word.
	Reject apdu.StatusWord
	// Frames records every frame received, in order.
	Frames [][]byte
	// Closed is set once Close has been called.
	Closed bool

	master  *bip32.Key
	pending []byte
	ins     byte
}

// NewDevice returns a device seeded from Mnemonic.
func NewDevice() *Device {
	d, err := NewDeviceFromMnemonic(Mnemonic)
	if err != nil {
		panic(err)
	}
	return d
}

// NewDeviceFromMnemonic returns a device seeded from mnemonic.
func NewDeviceFromMnemonic(mnemonic string) (*Device, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, errors.Wrap(err, "invalid mnemonic")
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "deriving master key")
	}
	return &Device{Version: EmulatorVersion, master: master}, nil
}

// PrivateKey derives the key at path.
func (d *Device) PrivateKey(path accounts.DerivationPath) (*ecdsa.PrivateKey, error) {
	key := d.master
	for _, index := range path {
		child, err := key.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrapf(err, "deriving %s", path)
		}
		key = child
	}
	return crypto.ToECDSA(common.LeftPadBytes(key.Key, 32))
}

// Address derives the address at path.
func (d *Device) Address(path accounts.DerivationPath) (common.Address, error) {
	key, err := d.PrivateKey(path)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

// MustAddress is Address for a path string, panicking on error.
func (d *Device) MustAddress(path string) common.Address {
	p, err := accounts.ParseDerivationPath(path)
	if err != nil {
		panic(err)
	}
	addr, err := d.Address(p)
	if err != nil {
		panic(err)
	}
	return addr
}

// Close marks the device closed.
func (d *Device) Close() error {
	d.Closed = true
	return nil
}

// Exchange handles one frame and returns the reply data. Device errors are
// returned as *apdu.StatusError, like the HID transport does.
func (d *Device) Exchange(command []byte) ([]byte, error) {
	if d.Closed {
		return nil, errors.New("device closed")
	}
	d.Frames = append(d.Frames, append([]byte(nil), command...))

	if len(command) < 5 {
		return nil, &apdu.StatusError{SW: apdu.StatusIncorrectLength}
	}
	ins, p1, p2 := command[1], command[2], command[3]
	data := command[5:]
	if command[0] != apdu.CLA {
		return nil, &apdu.StatusError{SW: apdu.StatusAppNotStarted}
	}
	if ins == insGetConfiguration {
		if len(command) > 5 {
			data = nil
		}
	} else if int(command[4]) != len(data) {
		return nil, &apdu.StatusError{SW: apdu.StatusIncorrectLength}
	}

	switch ins {
	case insGetConfiguration:
		v := d.Version
		return []byte{v.Flags, v.Major, v.Minor, v.Patch}, nil
	case insGetAddress:
		return d.getAddress(data, p2 == 0x01)
	case insSignTransaction, insSignMessage:
		if d.Reject != 0 {
			return nil, &apdu.StatusError{SW: d.Reject}
		}
		return d.chunk(ins, p1, data)
	case insSignTypedData:
		if d.Reject != 0 {
			return nil, &apdu.StatusError{SW: d.Reject}
		}
		return d.signTypedData(data)
	}
	return nil, &apdu.StatusError{SW: apdu.StatusAppNotStarted}
}

func splitPath(data []byte) (accounts.DerivationPath, []byte, error) {
	if len(data) < 1 {
		return nil, nil, errors.New("missing path")
	}
	n := int(data[0])
	if n == 0 || len(data) < 1+4*n {
		return nil, nil, errors.New("truncated path")
	}
	path := make(accounts.DerivationPath, n)
	for i := range path {
		path[i] = binary.BigEndian.Uint32(data[1+4*i:])
	}
	return path, data[1+4*n:], nil
}

func invalid() error {
	return &apdu.StatusError{SW: apdu.StatusInvalidData}
}

func (d *Device) getAddress(data []byte, withChainCode bool) ([]byte, error) {
	path, _, err := splitPath(data)
	if err != nil {
		return nil, invalid()
	}
	key, err := d.PrivateKey(path)
	if err != nil {
		return nil, invalid()
	}

	pub := crypto.FromECDSAPub(&key.PublicKey)
	addr := hex.EncodeToString(crypto.PubkeyToAddress(key.PublicKey).Bytes())

	reply := []byte{byte(len(pub))}
	reply = append(reply, pub...)
	reply = append(reply, byte(len(addr)))
	reply = append(reply, addr...)
	if withChainCode {
		reply = append(reply, make([]byte, 32)...)
	}
	return reply, nil
}

// chunk accumulates a first/continuation transfer and signs once the
// payload is complete. Intermediate blocks get an empty reply.
func (d *Device) chunk(ins, p1 byte, data []byte) ([]byte, error) {
	switch p1 {
	case apdu.P1FirstBlock:
		d.pending = append([]byte(nil), data...)
		d.ins = ins
	case apdu.P1ContinuationBlock:
		if d.pending == nil || d.ins != ins {
			return nil, &apdu.StatusError{SW: apdu.StatusInvalidTxChunks}
		}
		d.pending = append(d.pending, data...)
	default:
		return nil, &apdu.StatusError{SW: apdu.StatusInvalidTxChunks}
	}

	path, rest, err := splitPath(d.pending)
	if err != nil {
		return nil, nil
	}

	var (
		reply    []byte
		complete bool
	)
	if ins == insSignTransaction {
		reply, complete, err = d.signTransaction(path, rest)
	} else {
		reply, complete, err = d.signMessage(path, rest)
	}
	if err != nil || complete {
		d.pending = nil
	}
	return reply, err
}

func transactionComplete(raw []byte) bool {
	if len(raw) == 0 {
		return false
	}
	body := raw
	if raw[0] < 0x7f {
		body = raw[1:]
	}
	_, _, rest, err := rlp.Split(body)
	return err == nil && len(rest) == 0
}

func (d *Device) sign(path accounts.DerivationPath, hash []byte) ([]byte, byte, error) {
	key, err := d.PrivateKey(path)
	if err != nil {
		return nil, 0, invalid()
	}
	sig, err := crypto.Sign(hash, key)
	if err != nil {
		return nil, 0, invalid()
	}
	return sig, sig[64], nil
}

func signatureReply(sig []byte, v byte) []byte {
	var raw apdu.RawSignature
	raw.V = v
	copy(raw.R[:], sig[:32])
	copy(raw.S[:], sig[32:64])
	return apdu.EncodeSignature(raw)
}

func (d *Device) signTransaction(path accounts.DerivationPath, raw []byte) ([]byte, bool, error) {
	if !transactionComplete(raw) {
		return nil, false, nil
	}

	txn, err := tx.DecodeUnsigned(raw)
	if err != nil {
		return nil, true, invalid()
	}
	sig, rec, err := d.sign(path, crypto.Keccak256(raw))
	if err != nil {
		return nil, true, err
	}

	if txn.Type() != tx.LegacyTxType {
		return signatureReply(sig, rec), true, nil
	}
	v := new(uint256.Int).Mul(txn.ChainID(), uint256.NewInt(2))
	v.AddUint64(v, 35+uint64(rec))
	return signatureReply(sig, byte(v.Uint64())), true, nil
}

func (d *Device) signMessage(path accounts.DerivationPath, rest []byte) ([]byte, bool, error) {
	if len(rest) < 4 {
		return nil, false, nil
	}
	n := binary.BigEndian.Uint32(rest)
	msg := rest[4:]
	if uint32(len(msg)) < n {
		return nil, false, nil
	}
	if uint32(len(msg)) > n {
		return nil, true, &apdu.StatusError{SW: apdu.StatusIncorrectLength}
	}

	sig, rec, err := d.sign(path, accounts.TextHash(msg))
	if err != nil {
		return nil, true, err
	}
	return signatureReply(sig, 27+rec), true, nil
}

func (d *Device) signTypedData(data []byte) ([]byte, error) {
	path, rest, err := splitPath(data)
	if err != nil {
		return nil, invalid()
	}
	if len(rest) != 2*common.HashLength {
		return nil, &apdu.StatusError{SW: apdu.StatusIncorrectLength}
	}

	hash := signature.TypedDataHash(common.BytesToHash(rest[:32]), common.BytesToHash(rest[32:]))
	sig, rec, err := d.sign(path, hash[:])
	if err != nil {
		return nil, err
	}
	return signatureReply(sig, 27+rec), nil
}

// FailingDevice fails every exchange with Err.
type FailingDevice struct {
	Err    error
	Calls  int
	Closed bool
}

func (f *FailingDevice) Exchange([]byte) ([]byte, error) {
	f.Calls++
	if f.Err == nil {
		return nil, errors.Errorf("exchange %d failed", f.Calls)
	}
	return nil, f.Err
}

func (f *FailingDevice) Close() error {
	f.Closed = true
	return nil
}
