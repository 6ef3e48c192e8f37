// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package sgserial

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dswarbrick/sgserial/scsi"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, nil, 0600))
}

func TestScanDevices(t *testing.T) {
	sysfs := t.TempDir()
	dev := t.TempDir()

	for _, name := range []string{"sg0", "sg1", "sg7"} {
		require.NoError(t, os.Mkdir(filepath.Join(sysfs, name), 0700))
	}

	// sg7 is registered in sysfs but has no device node
	for _, name := range []string{"sg0", "sg1", "sda", "sda1", "sdb", "sdab", "nvme0n1"} {
		touch(t, filepath.Join(dev, name))
	}

	expected := []string{
		filepath.Join(dev, "sda"),
		filepath.Join(dev, "sdab"),
		filepath.Join(dev, "sdb"),
		filepath.Join(dev, "sg0"),
		filepath.Join(dev, "sg1"),
	}

	assert.Equal(t, expected, scanDevices(sysfs, dev))
}

func TestScanDevicesNoSysfs(t *testing.T) {
	dev := t.TempDir()
	touch(t, filepath.Join(dev, "sdc"))

	assert.Equal(t, []string{filepath.Join(dev, "sdc")},
		scanDevices(filepath.Join(dev, "missing"), dev))
}

func TestQueryAll(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	plain := filepath.Join(dir, "plain")
	touch(t, plain)

	names := []string{filepath.Join(dir, "sg0"), plain, filepath.Join(dir, "sg1")}
	results := QueryAll(names)

	require.Len(t, results, len(names))

	for i, res := range results {
		assert.Equal(names[i], res.Device)
		assert.Nil(res.Serial)

		var herr *scsi.HandleError
		assert.ErrorAs(res.Err, &herr, res.Device)
	}
}

func TestQueryAllEmpty(t *testing.T) {
	assert.Empty(t, QueryAll(nil))
}
