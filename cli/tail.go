// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"time"

	"github.com/absmach/rigdash/dashboard"
	"github.com/absmach/rigdash/dashboard/sinks/terminal"
	"github.com/absmach/rigdash/pkg/errors"
	"github.com/absmach/rigdash/pkg/messaging"
	"github.com/spf13/cobra"
)

// NewTailCmd returns the tail command.
func NewTailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tail",
		Short: "Print frames from the feed",
		Long: "Subscribes to the feed and prints every decoded envelope.\n" +
			"Usage:\n" +
			"\trigdash-cli tail --count 10\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			ctx := cmd.Context()
			sub, err := subscriber(ctx)
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			defer sub.Close()

			var seen uint64
			for Count == 0 || seen < Count {
				frame, err := sub.Poll(ctx)
				switch {
				case ctx.Err() != nil:
					return
				case errors.Contains(err, messaging.ErrWouldBlock):
					continue
				case err != nil:
					logErrorCmd(*cmd, err)
					return
				}
				seen++
				printFrame(*cmd, frame)
			}
		},
	}
}

func printFrame(cmd cobra.Command, frame []byte) {
	if RawOutput {
		fmt.Fprintln(cmd.OutOrStdout(), string(frame))
		return
	}

	topic, payload, err := dashboard.Split(frame)
	if err != nil {
		printFrameError(cmd, err)
		return
	}
	env, err := dashboard.Decode(topic, payload)
	if err != nil {
		printFrameError(cmd, err)
		return
	}

	logJSONCmd(cmd, env)
}

// printFrameError reports a bad frame the way the dashboard's log pane does.
func printFrameError(cmd cobra.Command, err error) {
	ev := dashboard.ErrorEvent(time.Now().Format(dashboard.ClockLayout), dashboard.CoreDevice, err)
	terminal.NewWriter(cmd.ErrOrStderr()).OnEvent(ev)
}
