// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// SCSI command definitions.

package scsi

const (
	// SCSI commands used by this package
	SCSI_INQUIRY = 0x12

	// INQUIRY byte 1: request a vital product data page instead of standard INQUIRY data
	INQ_EVPD = 0x01

	// VPD pages
	VPD_UNIT_SERIAL_NUMBER = 0x80

	// Length of the VPD response buffer, also used as the CDB allocation length
	INQ_VPD_REPLY_LEN = 96

	// VPD page header: peripheral, page code, reserved, page length
	VPD_HEADER_LEN = 4

	// Longest serial number that fits in the response buffer
	MAX_SERIAL_LEN = INQ_VPD_REPLY_LEN - VPD_HEADER_LEN

	SENSE_BUF_LEN = 32

	// Timeout in milliseconds for VPD inquiries
	VPD_TIMEOUT = 5000
)

// SCSI CDB types
type CDB6 [6]byte

// VPDResponse is the fixed-capacity buffer a device fills in response to an INQUIRY VPD request.
type VPDResponse [INQ_VPD_REPLY_LEN]byte

// inquiryVPD returns an INQUIRY CDB requesting the given VPD page.
func inquiryVPD(page, allocLen uint8) CDB6 {
	return CDB6{SCSI_INQUIRY, INQ_EVPD, page, 0, allocLen, 0}
}
