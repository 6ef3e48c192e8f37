// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// sgserial prints the unit serial number (INQUIRY VPD page 0x80) of SCSI devices.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newCommand(os.Stdout).Execute(); err != nil {
		log.Debug(err)
		os.Exit(1)
	}
}
