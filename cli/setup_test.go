// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/absmach/rigdash/pkg/messaging"
	"github.com/absmach/rigdash/pkg/messaging/mocks"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

type outputLog uint8

const (
	usageLog outputLog = iota
	errLog
	entityLog
	okLog
)

type fakeBroker struct {
	pub    *mocks.Publisher
	sub    *mocks.Subscriber
	pubErr error
	subErr error
}

func (b *fakeBroker) Publisher() (messaging.Publisher, error) {
	if b.pubErr != nil {
		return nil, b.pubErr
	}
	return b.pub, nil
}

func (b *fakeBroker) Subscriber(context.Context) (messaging.Subscriber, error) {
	if b.subErr != nil {
		return nil, b.subErr
	}
	return b.sub, nil
}

func executeCommand(t *testing.T, root *cobra.Command, args ...string) string {
	buffer := new(bytes.Buffer)
	root.SetOut(buffer)
	root.SetErr(buffer)
	root.SetArgs(args)
	err := root.Execute()
	assert.NoError(t, err, "Error executing command")
	return buffer.String()
}

func newRootCmd(cmds ...*cobra.Command) *cobra.Command {
	root := &cobra.Command{Use: "rigdash-cli"}
	for _, c := range cmds {
		root.AddCommand(c)
	}
	return root
}
