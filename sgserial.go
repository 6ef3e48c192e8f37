// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package sgserial reads unit serial numbers from SCSI devices via the Linux SCSI generic (sg)
// driver.
package sgserial

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/dswarbrick/sgserial/scsi"
)

const (
	sysfsSCSIGeneric = "/sys/class/scsi_generic"
	devDir           = "/dev"
)

// Result is the outcome of reading the serial number of one device.
type Result struct {
	Device string
	Serial []byte
	Err    error
}

// ScanDevices returns the sg nodes registered in sysfs plus all whole SCSI disks, sorted.
func ScanDevices() []string {
	return scanDevices(sysfsSCSIGeneric, devDir)
}

func scanDevices(sysfsDir, devDir string) []string {
	seen := make(map[string]bool)

	// /sys/class/scsi_generic/sgN -> /dev/sgN
	if entries, err := os.ReadDir(sysfsDir); err == nil {
		for _, e := range entries {
			dev := filepath.Join(devDir, e.Name())
			if _, err := os.Stat(dev); err == nil {
				seen[dev] = true
			}
		}
	} else {
		log.Debugf("cannot read %s: %v", sysfsDir, err)
	}

	// Find all SCSI disk devices
	if files, err := filepath.Glob(filepath.Join(devDir, "sd*[^0-9]")); err == nil {
		for _, file := range files {
			seen[file] = true
		}
	}

	devices := make([]string, 0, len(seen))
	for dev := range seen {
		devices = append(devices, dev)
	}

	sort.Strings(devices)
	return devices
}

// Query opens a device, reads its unit serial number and closes it again.
func Query(name string) Result {
	res := Result{Device: name}

	d := scsi.NewSCSIDevice(name)
	if res.Err = d.Open(); res.Err != nil {
		return res
	}

	defer d.Close()

	res.Serial, res.Err = d.SerialNumber()
	return res
}

// QueryAll queries each device in its own goroutine. Results are returned in the order of names.
func QueryAll(names []string) []Result {
	results := make([]Result, len(names))

	var wg sync.WaitGroup

	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			results[i] = Query(name)
		}(i, name)
	}

	wg.Wait()
	return results
}
