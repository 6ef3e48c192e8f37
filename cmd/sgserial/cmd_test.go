// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/dswarbrick/sgserial"
	"github.com/dswarbrick/sgserial/drivedb"
)

const testDb = `
drives:
  - label: DEFAULT
    warning: Unknown drive
  - label: rack1-slot3
    serial_regex: ^ABC12$
`

func TestNewReport(t *testing.T) {
	assert := assert.New(t)

	db, err := drivedb.ReadDriveDb(strings.NewReader(testDb))
	require.NoError(t, err)

	r := newReport(sgserial.Result{Device: "/dev/sg0", Serial: []byte("ABC12")}, &db)
	assert.Equal(report{Device: "/dev/sg0", Serial: "ABC12", SerialHex: "4142433132", Label: "rack1-slot3"}, r)

	r = newReport(sgserial.Result{Device: "/dev/sg1", Serial: []byte(" XYZ\x00")}, &db)
	assert.Equal("XYZ", r.Serial)
	assert.Empty(r.Label)
	assert.Equal("Unknown drive", r.Warning)

	r = newReport(sgserial.Result{Device: "/dev/sg2", Err: errors.New("boom")}, &db)
	assert.Equal(report{Device: "/dev/sg2", Error: "boom"}, r)
}

func TestPrintReport(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	r := report{Device: "/dev/sg0", Serial: "ABC12", SerialHex: "4142433132", Label: "rack1-slot3"}

	printReport(&buf, r, false)
	assert.Equal("/dev/sg0: Serial Number: ABC12 [rack1-slot3]\n", buf.String())

	buf.Reset()
	printReport(&buf, r, true)
	assert.Equal("/dev/sg0: Serial Number: 4142433132 [rack1-slot3]\n", buf.String())

	buf.Reset()
	printReport(&buf, report{Device: "/dev/sg1", Serial: "X", Warning: "Unknown drive"}, false)
	assert.Equal("/dev/sg1: Serial Number: X\n/dev/sg1: WARNING: Unknown drive\n", buf.String())

	buf.Reset()
	printReport(&buf, report{Device: "/dev/sg2", Error: "boom"}, false)
	assert.Empty(buf.String())
}

func TestSetLogLevel(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	assert.NoError(t, setLogLevel("debug"))
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	assert.NoError(t, setLogLevel("fatal"))
	assert.Equal(t, log.ErrorLevel, log.GetLevel())

	assert.EqualError(t, setLogLevel("verbose"), "unknown log level: verbose")
}

func TestCommandMissingDevice(t *testing.T) {
	var out bytes.Buffer

	dev := filepath.Join(t.TempDir(), "sg0")

	cmd := newCommand(&out)
	cmd.SetArgs([]string{"--output", "yaml", dev})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	assert.ErrorIs(t, err, errQueryFailed)

	var reports []report
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, dev, reports[0].Device)
	assert.Contains(t, reports[0].Error, "no such file or directory")
}

func TestCommandBadOutput(t *testing.T) {
	cmd := newCommand(&bytes.Buffer{})
	cmd.SetArgs([]string{"--output", "json", "/dev/null"})
	cmd.SetErr(&bytes.Buffer{})

	assert.EqualError(t, cmd.Execute(), "unknown output format: json")
}

func TestCommandMissingDb(t *testing.T) {
	cmd := newCommand(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", filepath.Join(t.TempDir(), "missing.yaml"), "/dev/null"})
	cmd.SetErr(&bytes.Buffer{})

	assert.ErrorContains(t, cmd.Execute(), "cannot open drive database")
}

func TestHasRawIOCaps(t *testing.T) {
	assert := assert.New(t)

	assert.False(hasRawIOCaps(0))
	assert.True(hasRawIOCaps(CAP_SYS_RAWIO))
	assert.True(hasRawIOCaps(CAP_SYS_ADMIN))
	assert.False(hasRawIOCaps(1 << 0))
}
