// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_eth

import (
	"fmt"

	"github.com/pkg/errors"
)

var errDeviceNotFound = errors.New("device not found")

// StaticAdmin hands out a fixed set of already open devices, such as
// emulators.
type StaticAdmin struct {
	devices []LedgerDevice
}

// NewStaticAdmin returns an admin over devices.
func NewStaticAdmin(devices ...LedgerDevice) *StaticAdmin {
	return &StaticAdmin{devices: devices}
}

func (admin *StaticAdmin) CountDevices() int {
	return len(admin.devices)
}

func (admin *StaticAdmin) ListDevices() ([]string, error) {
	names := make([]string, len(admin.devices))
	for i := range admin.devices {
		names[i] = fmt.Sprintf("static-%d", i)
	}
	return names, nil
}

func (admin *StaticAdmin) Connect(deviceIndex int) (LedgerDevice, error) {
	if deviceIndex < 0 || deviceIndex >= len(admin.devices) {
		return nil, errors.Wrapf(errDeviceNotFound, "index %d", deviceIndex)
	}
	return admin.devices[deviceIndex], nil
}
