// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/absmach/rigdash"
	"github.com/spf13/cobra"
)

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

// NewVersionCmd returns version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "rigdash-cli version",
		Long:  `Prints the version the CLI was built from`,
		Run: func(cmd *cobra.Command, args []string) {
			logJSONCmd(*cmd, versionInfo{
				Version:   rigdash.Version,
				Commit:    rigdash.Commit,
				BuildTime: rigdash.BuildTime,
			})
		},
	}
}
