// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package scsi

import (
	"errors"
	"fmt"
)

// ErrHandleInvalid is wrapped by a HandleError when a device has no usable file descriptor.
var ErrHandleInvalid = errors.New("invalid device handle")

// HandleError reports a device that cannot be used for SCSI generic pass-through.
type HandleError struct {
	Device string
	Err    error
}

func (e *HandleError) Error() string {
	return fmt.Sprintf("%s: %v", e.Device, e.Err)
}

func (e *HandleError) Unwrap() error {
	return e.Err
}

// TransportError reports a failed SG_IO submission. Err is usually a unix.Errno.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("SG_IO ioctl failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// CommandError reports a command that reached the device but did not complete successfully.
// Sense holds only the bytes the device actually wrote and is not decoded.
type CommandError struct {
	ScsiStatus   uint8
	HostStatus   uint16
	DriverStatus uint16
	Info         uint32
	Sense        []byte
}

// See http://www.t10.org/lists/2status.htm for SCSI status codes
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("SCSI command failed: SCSI status: %#02x, host status: %#02x, driver status: %#02x",
		e.ScsiStatus, e.HostStatus, e.DriverStatus)
	if len(e.Sense) > 0 {
		msg += fmt.Sprintf(", sense: % x", e.Sense)
	}
	return msg
}

// MalformedResponseError reports a VPD serial page whose length byte is out of range.
type MalformedResponseError struct {
	Length uint8
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("invalid serial length: %d (must be 1..%d)", e.Length, MAX_SERIAL_LEN)
}
