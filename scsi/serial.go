// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Unit serial number VPD page.

package scsi

import (
	"encoding/hex"

	log "github.com/sirupsen/logrus"
)

// QuerySerialNumber sends a single INQUIRY for VPD page 0x80 over t and returns the unit serial
// number. The returned bytes are opaque; they are usually, but not necessarily, printable ASCII.
func QuerySerialNumber(t Transport) ([]byte, error) {
	var (
		resp  VPDResponse
		sense [SENSE_BUF_LEN]byte
	)

	cdb := inquiryVPD(VPD_UNIT_SERIAL_NUMBER, INQ_VPD_REPLY_LEN)

	req := Request{
		CDB:       cdb[:],
		Direction: SG_DXFER_FROM_DEV,
		Data:      resp[:],
		Sense:     sense[:],
		Timeout:   VPD_TIMEOUT,
	}

	status, err := t.Execute(&req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if !status.OK() {
		senseLen := int(status.SenseLen)
		if senseLen > len(sense) {
			senseLen = len(sense)
		}

		return nil, &CommandError{
			ScsiStatus:   status.ScsiStatus,
			HostStatus:   status.HostStatus,
			DriverStatus: status.DriverStatus,
			Info:         status.Info,
			Sense:        append([]byte(nil), sense[:senseLen]...),
		}
	}

	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debugf("INQUIRY VPD page %#02x response:\n%s", VPD_UNIT_SERIAL_NUMBER, hex.Dump(resp[:]))
	}

	return ParseSerialResponse(&resp)
}

// ParseSerialResponse extracts the serial number field from a unit serial number VPD page.
// The page length in byte 3 is validated before any other byte of resp is read.
func ParseSerialResponse(resp *VPDResponse) ([]byte, error) {
	n := resp[3]

	if n == 0 || int(n) > MAX_SERIAL_LEN {
		return nil, &MalformedResponseError{Length: n}
	}

	serial := make([]byte, n)
	copy(serial, resp[VPD_HEADER_LEN:VPD_HEADER_LEN+int(n)])

	return serial, nil
}
