// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package env loads service configuration from environment variables.
package env

import (
	"github.com/caarlos0/env/v7"
)

// Options mirror the subset of caarlos0/env options the services use.
type Options struct {
	// Environment keys and values that will be accessible for the service
	Environment map[string]string

	// TagName specifies another tagname to use rather than the default env
	TagName string

	// RequiredIfNoDef automatically sets all env as required if they do not declare 'envDefault'
	RequiredIfNoDef bool

	// Prefix define a prefix for each key
	Prefix string
}

// Parse fills v from the environment.
func Parse(v interface{}, opts ...Options) error {
	altOpts := []env.Options{}

	for _, opt := range opts {
		altOpts = append(altOpts, env.Options{
			Environment:     opt.Environment,
			TagName:         opt.TagName,
			RequiredIfNoDef: opt.RequiredIfNoDef,
			Prefix:          opt.Prefix,
		})
	}

	return env.Parse(v, altOpts...)
}
