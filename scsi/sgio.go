// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// SCSI generic IO functions.

package scsi

import (
	"runtime"
	"unsafe"

	log "github.com/sirupsen/logrus"

	"github.com/dswarbrick/sgserial/ioctl"
)

const (
	SG_DXFER_NONE        = -1
	SG_DXFER_TO_DEV      = -2
	SG_DXFER_FROM_DEV    = -3
	SG_DXFER_TO_FROM_DEV = -4

	SG_INFO_OK_MASK = 0x1
	SG_INFO_OK      = 0x0

	SG_GET_VERSION_NUM = 0x2282
	SG_IO              = 0x2285

	// Oldest sg driver version supporting the v3 sg_io_hdr interface
	SG_MIN_VERSION = 30000
)

// SCSI generic ioctl header, defined as sg_io_hdr_t in <scsi/sg.h>
type sgIoHdr struct {
	interface_id    int32   // 'S' for SCSI generic (required)
	dxfer_direction int32   // data transfer direction
	cmd_len         uint8   // SCSI command length (<= 16 bytes)
	mx_sb_len       uint8   // max length to write to sbp
	iovec_count     uint16  // 0 implies no scatter gather
	dxfer_len       uint32  // byte count of data transfer
	dxferp          uintptr // points to data transfer memory or scatter gather list
	cmdp            uintptr // points to command to perform
	sbp             uintptr // points to sense_buffer memory
	timeout         uint32  // MAX_UINT -> no timeout (unit: millisec)
	flags           uint32  // 0 -> default, see SG_FLAG...
	pack_id         int32   // unused internally (normally)
	usr_ptr         uintptr // unused internally
	status          uint8   // SCSI status
	masked_status   uint8   // shifted, masked scsi status
	msg_status      uint8   // messaging level data (optional)
	sb_len_wr       uint8   // byte count actually written to sbp
	host_status     uint16  // errors from host adapter
	driver_status   uint16  // errors from software driver
	resid           int32   // dxfer_len - actual_transferred
	duration        uint32  // time taken by cmd (unit: millisec)
	info            uint32  // auxiliary information
}

// Request is a single SCSI generic transaction. Data and Sense are owned by the caller and are
// written by the device during Execute.
type Request struct {
	CDB       []byte
	Direction int32
	Data      []byte
	Sense     []byte
	Timeout   uint32 // milliseconds
}

// Status holds the completion fields the sg driver reports for a Request.
type Status struct {
	ScsiStatus   uint8
	MaskedStatus uint8
	HostStatus   uint16
	DriverStatus uint16
	SenseLen     uint8 // sense bytes actually written
	Resid        int32
	Duration     uint32 // milliseconds
	Info         uint32
}

// OK reports whether the driver flagged the command as completed without error.
func (s Status) OK() bool {
	return s.Info&SG_INFO_OK_MASK == SG_INFO_OK
}

// Transport submits a Request to a device and blocks until it completes or times out. A non-nil
// error means the submission itself failed and the returned Status is meaningless.
type Transport interface {
	Execute(req *Request) (Status, error)
}

type sgTransport struct {
	fd uintptr
}

// NewTransport returns a Transport that issues SG_IO ioctls on fd.
func NewTransport(fd uintptr) Transport {
	return &sgTransport{fd: fd}
}

func (t *sgTransport) Execute(req *Request) (Status, error) {
	// Populate required fields of "sg_io_hdr_t" struct
	hdr := sgIoHdr{
		interface_id:    'S',
		dxfer_direction: req.Direction,
		timeout:         req.Timeout,
		cmd_len:         uint8(len(req.CDB)),
		mx_sb_len:       uint8(len(req.Sense)),
		dxfer_len:       uint32(len(req.Data)),
		cmdp:            bufPtr(req.CDB),
		dxferp:          bufPtr(req.Data),
		sbp:             bufPtr(req.Sense),
	}

	log.Debugf("SG_IO fd=%d cdb=% x dxfer_len=%d", t.fd, req.CDB, hdr.dxfer_len)

	err := ioctl.Ioctl(t.fd, SG_IO, uintptr(unsafe.Pointer(&hdr)))
	// hdr only holds uintptrs, so keep the buffers reachable until the driver is done with them
	runtime.KeepAlive(req)
	if err != nil {
		return Status{}, err
	}

	status := Status{
		ScsiStatus:   hdr.status,
		MaskedStatus: hdr.masked_status,
		HostStatus:   hdr.host_status,
		DriverStatus: hdr.driver_status,
		SenseLen:     hdr.sb_len_wr,
		Resid:        hdr.resid,
		Duration:     hdr.duration,
		Info:         hdr.info,
	}

	log.Debugf("SG_IO fd=%d completed in %dms, info=%#x status=%#02x resid=%d",
		t.fd, status.Duration, status.Info, status.ScsiStatus, status.Resid)

	return status, nil
}

func bufPtr(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}
