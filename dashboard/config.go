// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"os"
	"time"

	"github.com/absmach/rigdash/pkg/errors"
	"github.com/pelletier/go-toml"
)

// ErrReadConfig indicates a config file that cannot be read or parsed.
var ErrReadConfig = errors.New("failed to read config file")

// Config holds the dashboard service settings read from the environment.
type Config struct {
	LogLevel       string        `env:"RD_DASHBOARD_LOG_LEVEL"       envDefault:"info"`
	BrokerURL      string        `env:"RD_BROKER_URL"                envDefault:"tcp://localhost:1883"`
	ClientID       string        `env:"RD_DASHBOARD_CLIENT_ID"       envDefault:"rigdash-dashboard"`
	Subjects       []string      `env:"RD_DASHBOARD_SUBJECTS"        envSeparator:","`
	ConnectTimeout time.Duration `env:"RD_DASHBOARD_CONNECT_TIMEOUT" envDefault:"5s"`
	ConnectRetries uint64        `env:"RD_DASHBOARD_CONNECT_RETRIES" envDefault:"5"`
	PollTimeout    time.Duration `env:"RD_DASHBOARD_POLL_TIMEOUT"    envDefault:"10ms"`
	Tick           time.Duration `env:"RD_DASHBOARD_TICK"            envDefault:"50ms"`
	BufferCapacity int           `env:"RD_DASHBOARD_BUFFER_CAPACITY" envDefault:"60"`
	InboxSize      int           `env:"RD_DASHBOARD_INBOX_SIZE"      envDefault:"1024"`
	WSQueueSize    int           `env:"RD_DASHBOARD_WS_QUEUE_SIZE"   envDefault:"256"`
	ConfigFile     string        `env:"RD_DASHBOARD_CONFIG_FILE"     envDefault:""`
	InstanceID     string        `env:"RD_DASHBOARD_INSTANCE_ID"     envDefault:""`
	JaegerURL      string        `env:"RD_JAEGER_URL"                envDefault:""`
	TraceRatio     float64       `env:"RD_JAEGER_TRACE_RATIO"        envDefault:"1.0"`
}

// FileConfig is the optional TOML file:
//
//	[subscriber]
//	subjects = ["data", "logs"]
//
//	[buffers]
//	capacity = 120
type FileConfig struct {
	Subscriber struct {
		Subjects []string `toml:"subjects"`
	} `toml:"subscriber"`
	Buffers struct {
		Capacity int `toml:"capacity"`
	} `toml:"buffers"`
}

// ReadConfigFile parses the TOML file at path.
func ReadConfigFile(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, errors.Wrap(ErrReadConfig, err)
	}

	var fc FileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return FileConfig{}, errors.Wrap(ErrReadConfig, err)
	}

	return fc, nil
}

// Merge returns cfg overridden by the values set in fc.
func (cfg Config) Merge(fc FileConfig) Config {
	if len(fc.Subscriber.Subjects) > 0 {
		cfg.Subjects = fc.Subscriber.Subjects
	}
	if fc.Buffers.Capacity > 0 {
		cfg.BufferCapacity = fc.Buffers.Capacity
	}
	return cfg
}
