// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package main contains the rigdash-cli main function.
package main

import (
	"log"
	"os"
	"time"

	"github.com/0x6flab/namegenerator"
	"github.com/absmach/rigdash/cli"
	rdlog "github.com/absmach/rigdash/logger"
	"github.com/absmach/rigdash/pkg/messaging"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"
)

func main() {
	var (
		logLevel       = "error"
		connectTimeout = 5 * time.Second
	)

	// Root
	rootCmd := &cobra.Command{
		Use: "rigdash-cli",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger, err := rdlog.New(os.Stderr, logLevel)
			if err != nil {
				log.Fatalf("failed to init logger: %s", err)
			}
			clientID := cli.ClientID
			if clientID == "" {
				clientID = "rigdash-cli-" + namegenerator.NewNameGenerator().Generate()
			}
			cli.SetBroker(cli.NewBroker(cli.BrokerURL, messaging.Config{
				ClientID:       clientID,
				Subjects:       cli.Subjects,
				ConnectTimeout: connectTimeout,
			}, logger))
		},
	}

	cc.Init(&cc.Config{
		RootCmd:  rootCmd,
		Headings: cc.HiCyan + cc.Bold + cc.Underline,
		Commands: cc.HiYellow + cc.Bold,
		Example:  cc.Italic,
		ExecName: cc.Bold,
		Flags:    cc.Bold,
	})

	// Root Commands
	rootCmd.AddCommand(cli.NewVersionCmd())
	rootCmd.AddCommand(cli.NewPublishCmd())
	rootCmd.AddCommand(cli.NewReplayCmd())
	rootCmd.AddCommand(cli.NewTailCmd())

	// Root Flags
	rootCmd.PersistentFlags().StringVarP(
		&cli.BrokerURL,
		"broker-url",
		"b",
		cli.BrokerURL,
		"Feed broker URL; the scheme selects MQTT, NATS or RabbitMQ",
	)

	rootCmd.PersistentFlags().StringVar(
		&cli.ClientID,
		"client-id",
		cli.ClientID,
		"Broker client ID, generated when empty",
	)

	rootCmd.PersistentFlags().DurationVar(
		&connectTimeout,
		"connect-timeout",
		connectTimeout,
		"Broker connect timeout",
	)

	rootCmd.PersistentFlags().StringVar(
		&logLevel,
		"log-level",
		logLevel,
		"Broker client log level",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&cli.RawOutput,
		"raw",
		"r",
		cli.RawOutput,
		"Enables raw output mode for easier parsing of output",
	)

	// Feed Flags
	rootCmd.PersistentFlags().StringSliceVarP(
		&cli.Subjects,
		"subjects",
		"s",
		nil,
		"Subjects to tail, all when empty",
	)

	rootCmd.PersistentFlags().DurationVarP(
		&cli.Interval,
		"interval",
		"i",
		cli.Interval,
		"Delay between replayed frames",
	)

	rootCmd.PersistentFlags().Uint64VarP(
		&cli.Count,
		"count",
		"c",
		cli.Count,
		"Stop tail after this many frames",
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
