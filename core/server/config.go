package server

import (
	"fmt"
	"strconv"
)

// Config holds configuration for the HTTP servers.
type Config struct {
	// Port is the port of the REST API.
	Port string `mapstructure:"port" default:"8080"`
	// LivePort is the port of the live websocket view; empty disables it.
	LivePort string `mapstructure:"live_port" default:"8081"`
	// ApiKey is the secret key required to access the API; empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// Metrics exposes GET /metrics when true.
	Metrics bool `mapstructure:"metrics" default:"true"`
}

// Validate checks that the configured ports are usable and distinct.
func (c Config) Validate() error {
	if err := validPort("port", c.Port); err != nil {
		return err
	}
	if c.LivePort == "" {
		return nil
	}
	if err := validPort("live_port", c.LivePort); err != nil {
		return err
	}
	if c.LivePort == c.Port {
		return fmt.Errorf("live_port must differ from port")
	}
	return nil
}

// LiveEnabled reports whether the live view should be served.
func (c Config) LiveEnabled() bool {
	return c.LivePort != ""
}

func validPort(name, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("%s %q is not a valid port", name, value)
	}
	return nil
}
