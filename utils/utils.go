// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Miscellaneous utility functions

package utils

import (
	"fmt"
	"strings"
)

// FormatSerial renders raw serial number bytes for display. Leading and trailing spaces and NULs
// (devices commonly pad the field with either) are dropped, and bytes outside printable ASCII are
// written as \xNN escapes.
func FormatSerial(b []byte) string {
	var sb strings.Builder

	for _, c := range trimSerial(b) {
		if c >= 0x20 && c < 0x7f {
			sb.WriteByte(c)
		} else {
			fmt.Fprintf(&sb, `\x%02x`, c)
		}
	}

	return sb.String()
}

func trimSerial(b []byte) []byte {
	isPad := func(c byte) bool { return c == ' ' || c == 0 }

	for len(b) > 0 && isPad(b[0]) {
		b = b[1:]
	}

	for len(b) > 0 && isPad(b[len(b)-1]) {
		b = b[:len(b)-1]
	}

	return b
}
