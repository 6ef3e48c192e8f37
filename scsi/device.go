// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package scsi

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/dswarbrick/sgserial/ioctl"
)

// SCSIDevice is a SCSI disk or generic (sg) device node.
type SCSIDevice struct {
	Name string
	fd   int
}

// NewSCSIDevice returns an unopened device.
func NewSCSIDevice(name string) *SCSIDevice {
	return &SCSIDevice{name, -1}
}

// Open opens the device read-only and checks that it speaks the v3 sg interface.
func (d *SCSIDevice) Open() error {
	fd, err := unix.Open(d.Name, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return &HandleError{Device: d.Name, Err: err}
	}

	var version int32

	if err := ioctl.Ioctl(uintptr(fd), SG_GET_VERSION_NUM, uintptr(unsafe.Pointer(&version))); err != nil {
		unix.Close(fd)
		return &HandleError{Device: d.Name, Err: fmt.Errorf("not an sg device: %w", err)}
	}

	if version < SG_MIN_VERSION {
		unix.Close(fd)
		return &HandleError{Device: d.Name, Err: fmt.Errorf("sg driver version %d too old", version)}
	}

	d.fd = fd
	return nil
}

func (d *SCSIDevice) Close() error {
	if d.fd < 0 {
		return nil
	}

	err := unix.Close(d.fd)
	d.fd = -1
	return err
}

// SerialNumber reads the unit serial number VPD page from an open device.
func (d *SCSIDevice) SerialNumber() ([]byte, error) {
	if d.fd < 0 {
		return nil, &HandleError{Device: d.Name, Err: ErrHandleInvalid}
	}

	return QuerySerialNumber(NewTransport(uintptr(d.fd)))
}
