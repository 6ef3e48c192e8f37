// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package drivedb maps device serial numbers to site-specific labels, e.g. asset tags or slot
// locations, using a YAML database.
package drivedb

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v2"
)

type DriveModel struct {
	Label          string         `yaml:"label"`
	SerialRegex    string         `yaml:"serial_regex,omitempty"`
	WarningMsg     string         `yaml:"warning,omitempty"`
	CompiledRegexp *regexp.Regexp `yaml:"-"`
}

type DriveDb struct {
	Drives []DriveModel `yaml:"drives"`
}

// LookupDrive returns the most appropriate DriveModel for a given serial number. If no entry
// matches, the DEFAULT entry (if any) is returned.
func (db *DriveDb) LookupDrive(serial []byte) DriveModel {
	var model DriveModel

	for _, d := range db.Drives {
		// Skip placeholder entry
		if strings.HasPrefix(d.Label, "$Id") {
			continue
		}

		if d.Label == "DEFAULT" {
			model = d
			continue
		}

		if d.CompiledRegexp != nil && d.CompiledRegexp.Match(serial) {
			return d
		}
	}

	return model
}

// ReadDriveDb decodes a YAML-formatted drive database and compiles its serial regexps.
func ReadDriveDb(r io.Reader) (DriveDb, error) {
	var db DriveDb

	dec := yaml.NewDecoder(r)

	if err := dec.Decode(&db); err != nil && err != io.EOF {
		return db, err
	}

	for i, d := range db.Drives {
		if d.SerialRegex == "" {
			continue
		}

		re, err := regexp.Compile(d.SerialRegex)
		if err != nil {
			return db, fmt.Errorf("drive %q: %v", d.Label, err)
		}

		db.Drives[i].CompiledRegexp = re
	}

	return db, nil
}

// OpenDriveDb opens a YAML-formatted drive database, unmarshalls it, and returns a DriveDb.
func OpenDriveDb(dbfile string) (DriveDb, error) {
	f, err := os.Open(dbfile)
	if err != nil {
		return DriveDb{}, err
	}

	defer f.Close()

	return ReadDriveDb(f)
}
