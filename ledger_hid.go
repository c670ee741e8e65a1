//go:build !ledger_mock
// +build !ledger_mock

// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Forked from github.com/zondax/ledger-go
// Licensed under the Apache License, Version 2.0

package ledger_eth

import (
	"sync"
	"time"

	"github.com/luxfi/hid"
	"github.com/pkg/errors"

	"github.com/luxfi/ledger-eth/apdu"
)

const (
	VendorLedger         = 0x2c97
	UsagePageLedgerNanoS = 0xffa0

	readTimeout = 20 * time.Second
)

type LedgerAdminHID struct{}

type LedgerDeviceHID struct {
	device      *hid.Device
	readCo      *sync.Once
	readChannel chan []byte
}

// list of supported product ids as well as their corresponding interfaces
// based on https://github.com/LedgerHQ/ledger-live/blob/develop/libs/ledgerjs/packages/devices/src/index.ts
var supportedLedgerProductID = map[uint8]int{
	0x40: 0, // Ledger Nano X
	0x10: 0, // Ledger Nano S
	0x50: 0, // Ledger Nano S Plus
	0x60: 0, // Ledger Stax
	0x70: 0, // Ledger Flex
}

// NewLedgerAdmin returns the HID admin.
func NewLedgerAdmin() LedgerAdmin {
	return &LedgerAdminHID{}
}

func ledgerDevices() []hid.DeviceInfo {
	var found []hid.DeviceInfo
	for _, d := range hid.Enumerate(VendorLedger, 0) {
		if isLedgerDevice(d) {
			found = append(found, d)
		}
	}
	return found
}

func (admin *LedgerAdminHID) ListDevices() ([]string, error) {
	devices := ledgerDevices()
	if len(devices) == 0 {
		log.Debug("No devices. Ledger LOCKED OR Other Program/Web Browser may have control of device.")
	}

	paths := make([]string, 0, len(devices))
	for _, d := range devices {
		logDeviceInfo(d)
		paths = append(paths, d.Path)
	}
	return paths, nil
}

func logDeviceInfo(d hid.DeviceInfo) {
	log.Debugf("============ %s", d.Path)
	log.Debugf("VendorID      : %x", d.VendorID)
	log.Debugf("ProductID     : %x", d.ProductID)
	log.Debugf("Release       : %x", d.Release)
	log.Debugf("Serial        : %x", d.Serial)
	log.Debugf("Manufacturer  : %s", d.Manufacturer)
	log.Debugf("Product       : %s", d.Product)
	log.Debugf("UsagePage     : %x", d.UsagePage)
	log.Debugf("Usage         : %x", d.Usage)
}

func isLedgerDevice(d hid.DeviceInfo) bool {
	if d.VendorID != VendorLedger {
		return false
	}
	if d.UsagePage == UsagePageLedgerNanoS {
		return true
	}

	// Some platforms report an empty usage page
	productIDMM := uint8(d.ProductID >> 8)
	interfaceID, supported := supportedLedgerProductID[productIDMM]
	return supported && interfaceID == d.Interface
}

func (admin *LedgerAdminHID) CountDevices() int {
	return len(ledgerDevices())
}

func (admin *LedgerAdminHID) Connect(deviceIndex int) (LedgerDevice, error) {
	devices := ledgerDevices()
	if deviceIndex < 0 || deviceIndex >= len(devices) {
		return nil, errors.Wrapf(errDeviceNotFound, "index %d of %d", deviceIndex, len(devices))
	}

	device, err := devices[deviceIndex].Open()
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", devices[deviceIndex].Path)
	}
	return &LedgerDeviceHID{device: device, readCo: &sync.Once{}, readChannel: make(chan []byte)}, nil
}

func (ledger *LedgerDeviceHID) Read() <-chan []byte {
	ledger.readCo.Do(func() {
		go ledger.readThread()
	})
	return ledger.readChannel
}

func (ledger *LedgerDeviceHID) readThread() {
	defer close(ledger.readChannel)
	for {
		buffer := make([]byte, PacketSize)
		readBytes, err := ledger.device.Read(buffer)
		if err != nil {
			return
		}
		ledger.readChannel <- buffer[:readBytes]
	}
}

func (ledger *LedgerDeviceHID) Exchange(command []byte) ([]byte, error) {
	if len(command) < 5 {
		return nil, errors.New("APDU commands should not be smaller than 5")
	}

	log.Debugf("[HID] => %x", command)

	if err := writeCommandAPDU(ledger.device, Channel, command, PacketSize); err != nil {
		return nil, err
	}

	response, err := ledger.getResponse()
	if err != nil {
		return nil, err
	}
	return apdu.CheckStatus(response)
}

func (ledger *LedgerDeviceHID) getResponse() ([]byte, error) {
	readChannel := ledger.Read()
	assembler := newResponseAssembler(Channel)

	for {
		select {
		case buffer, ok := <-readChannel:
			if !ok {
				return nil, errors.New("read channel closed")
			}
			done, err := assembler.add(buffer)
			if err != nil {
				return nil, err
			}
			if done {
				log.Debugf("[HID] <= %x", assembler.response)
				return assembler.response, nil
			}
		case <-time.After(readTimeout):
			return nil, errors.New("timeout reading from device")
		}
	}
}

func (ledger *LedgerDeviceHID) Close() error {
	return ledger.device.Close()
}
