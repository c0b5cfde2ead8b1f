// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnmarshalText(t *testing.T) {
	cases := map[string]struct {
		input  string
		output Level
		err    error
	}{
		"unknown level":    {"verbose", 0, ErrInvalidLogLevel},
		"empty level":      {"", 0, ErrInvalidLogLevel},
		"lower case debug": {"debug", Debug, nil},
		"upper case INFO":  {"INFO", Info, nil},
		"mixed case Warn":  {"Warn", Warn, nil},
		"upper case ERROR": {"ERROR", Error, nil},
	}

	for desc, tc := range cases {
		var lvl Level
		err := lvl.UnmarshalText(tc.input)
		assert.Equal(t, tc.output, lvl, fmt.Sprintf("%s: expected %s got %s", desc, tc.output, lvl))
		assert.Equal(t, tc.err, err, fmt.Sprintf("%s: expected %v got %v", desc, tc.err, err))
	}
}

func TestLevelIsAllowed(t *testing.T) {
	cases := map[string]struct {
		requested Level
		allowed   Level
		output    bool
	}{
		"debug when level debug": {Debug, Debug, true},
		"error when level debug": {Error, Debug, true},
		"warn when level info":   {Warn, Info, true},
		"error when level error": {Error, Error, true},
		"debug when level error": {Debug, Error, false},
		"info when level warn":   {Info, Warn, false},
		"debug when level info":  {Debug, Info, false},
	}

	for desc, tc := range cases {
		assert.Equal(t, tc.output, tc.requested.isAllowed(tc.allowed), desc)
	}
}
