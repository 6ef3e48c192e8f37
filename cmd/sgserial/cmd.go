// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/dswarbrick/sgserial"
	"github.com/dswarbrick/sgserial/drivedb"
	"github.com/dswarbrick/sgserial/utils"
)

const defaultDevice = "/dev/sda"

var errQueryFailed = errors.New("one or more devices failed")

type options struct {
	scan     bool
	raw      bool
	dbFile   string
	output   string
	logLevel string
}

// report is the YAML representation of a single device result.
type report struct {
	Device    string `yaml:"device"`
	Serial    string `yaml:"serial,omitempty"`
	SerialHex string `yaml:"serial_hex,omitempty"`
	Label     string `yaml:"label,omitempty"`
	Warning   string `yaml:"warning,omitempty"`
	Error     string `yaml:"error,omitempty"`
}

func newCommand(w io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "sgserial [device...]",
		Short:        "Print the unit serial number of SCSI devices",
		Long:         "Reads INQUIRY VPD page 0x80 through the SCSI generic driver. Defaults to " + defaultDevice + ".",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setLogLevel(opts.logLevel); err != nil {
				return err
			}

			devices := args
			if opts.scan {
				devices = append(devices, sgserial.ScanDevices()...)
			} else if len(devices) == 0 {
				devices = []string{defaultDevice}
			}

			return run(w, devices, opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.scan, "scan", false, "Query all SCSI generic and SCSI disk devices")
	flags.BoolVar(&opts.raw, "raw", false, "Print serial numbers as hex bytes")
	flags.StringVar(&opts.dbFile, "db", "", "Optional YAML drive database for labelling serial numbers")
	flags.StringVarP(&opts.output, "output", "o", "text", "Output format (text|yaml)")
	flags.StringVar(&opts.logLevel, "log", "info", "Log level (debug|info|warn|error)")

	return cmd
}

func setLogLevel(level string) error {
	switch level {
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "panic", "fatal", "error":
		log.SetLevel(log.ErrorLevel)
	default:
		return fmt.Errorf("unknown log level: %v", level)
	}
	return nil
}

func run(w io.Writer, devices []string, opts options) error {
	if opts.output != "text" && opts.output != "yaml" {
		return fmt.Errorf("unknown output format: %v", opts.output)
	}

	var db drivedb.DriveDb

	if opts.dbFile != "" {
		var err error
		if db, err = drivedb.OpenDriveDb(opts.dbFile); err != nil {
			return fmt.Errorf("cannot open drive database: %w", err)
		}
		log.Debugf("Drive DB contains %d entries", len(db.Drives))
	}

	checkCaps()

	results := sgserial.QueryAll(devices)
	reports := make([]report, len(results))
	failed := false

	for i, res := range results {
		reports[i] = newReport(res, &db)
		if res.Err != nil {
			log.WithField("device", res.Device).Error(res.Err)
			failed = true
		}
	}

	if opts.output == "yaml" {
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			printReport(w, r, opts.raw)
		}
	}

	if failed {
		return errQueryFailed
	}
	return nil
}

func newReport(res sgserial.Result, db *drivedb.DriveDb) report {
	r := report{Device: res.Device}

	if res.Err != nil {
		r.Error = res.Err.Error()
		return r
	}

	r.Serial = utils.FormatSerial(res.Serial)
	r.SerialHex = hex.EncodeToString(res.Serial)

	model := db.LookupDrive(res.Serial)
	if model.Label != "DEFAULT" {
		r.Label = model.Label
	}
	r.Warning = model.WarningMsg

	return r
}

func printReport(w io.Writer, r report, raw bool) {
	if r.Error != "" {
		return
	}

	serial := r.Serial
	if raw {
		serial = r.SerialHex
	}

	fmt.Fprintf(w, "%s: Serial Number: %s", r.Device, serial)
	if r.Label != "" {
		fmt.Fprintf(w, " [%s]", r.Label)
	}
	fmt.Fprintln(w)

	if r.Warning != "" {
		fmt.Fprintf(w, "%s: WARNING: %s\n", r.Device, r.Warning)
	}
}
