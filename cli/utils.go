// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"
)

var (
	// BrokerURL is the feed the commands connect to.
	BrokerURL string = "tcp://localhost:1883"
	// ClientID identifies the CLI connection on the broker. A random name
	// is generated when empty.
	ClientID string = ""
	// Subjects restricts tail to the given broker subjects.
	Subjects []string
	// Interval between two replayed frames.
	Interval time.Duration = time.Second
	// Count stops tail after that many frames. Zero tails forever.
	Count uint64 = 0
	// RawOutput raw output mode.
	RawOutput bool = false
)

func logJSONCmd(cmd cobra.Command, iList ...interface{}) {
	for _, i := range iList {
		m, err := json.Marshal(i)
		if err != nil {
			logErrorCmd(cmd, err)
			return
		}

		pj, err := prettyjson.Format(m)
		if err != nil {
			logErrorCmd(cmd, err)
			return
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n\n", string(pj))
	}
}

func logUsageCmd(cmd cobra.Command, u string) {
	fmt.Fprintf(cmd.OutOrStdout(), color.YellowString("\nusage: %s\n\n"), u)
}

func logErrorCmd(cmd cobra.Command, err error) {
	boldRed := color.New(color.FgRed, color.Bold)
	boldRed.Fprintf(cmd.ErrOrStderr(), "\nerror: ")

	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n\n", color.RedString(err.Error()))
}

func logOKCmd(cmd cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n\n", color.BlueString("ok"))
}

func logPublishedCmd(cmd cobra.Command, n int) {
	if RawOutput {
		fmt.Fprintln(cmd.OutOrStdout(), n)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), color.BlueString("\npublished: %d\n\n"), n)
}
