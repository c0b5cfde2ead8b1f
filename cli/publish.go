// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"time"

	"github.com/absmach/rigdash/dashboard"
	"github.com/absmach/rigdash/pkg/messaging"
	"github.com/spf13/cobra"
)

// NewPublishCmd returns the publish command.
func NewPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <topic> <JSON_string>",
		Short: "Publish a frame",
		Long: "Publishes one frame on the feed. The topic is also used as the broker subject.\n" +
			"Usage:\n" +
			"\trigdash-cli publish data '{\"device_name\":\"battery\",\"data\":{\"soc\":87}}'\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			pub, err := publisher()
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			defer pub.Close()

			if err := pub.Publish(cmd.Context(), args[0], dashboard.Join(args[0], []byte(args[1]))); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logOKCmd(*cmd)
		},
	}
}

// NewReplayCmd returns the replay command.
func NewReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <file>",
		Short: "Replay recorded frames",
		Long: "Publishes every topic|payload line of a file, waiting interval between frames.\n" +
			"Empty lines and lines starting with # are skipped.\n" +
			"Usage:\n" +
			"\trigdash-cli replay frames.txt --interval 500ms\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			f, err := os.Open(args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			defer f.Close()

			pub, err := publisher()
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			defer pub.Close()

			n, err := replay(cmd.Context(), pub, bufio.NewScanner(f), Interval)
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logPublishedCmd(*cmd, n)
		},
	}
}

func replay(ctx context.Context, pub messaging.Publisher, sc *bufio.Scanner, interval time.Duration) (int, error) {
	n := 0
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		topic, _, err := dashboard.Split(line)
		if err != nil {
			return n, err
		}
		if n > 0 && interval > 0 {
			select {
			case <-ctx.Done():
				return n, ctx.Err()
			case <-time.After(interval):
			}
		}
		if err := pub.Publish(ctx, topic, append([]byte(nil), line...)); err != nil {
			return n, err
		}
		n++
	}

	return n, sc.Err()
}
