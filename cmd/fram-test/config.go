package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML configuration for fram-test. Values set
// on the command line take precedence over the file.
//
// Example:
//
//	bus: "1"
//	address: 0x50
//	size: 32768
//	seed: 12345
//	trace: fram.trace
type fileConfig struct {
	// Bus is the I2C bus name or number as understood by the host
	// ("1", "/dev/i2c-1").
	Bus string `yaml:"bus"`

	// Address is the 7-bit peripheral address of the chip.
	Address uint16 `yaml:"address"`

	// Size overrides capacity auto-detection when non-zero.
	Size int64 `yaml:"size"`

	// Seed seeds the randomized scenarios for reproducible runs.
	Seed int64 `yaml:"seed"`

	// Trace is an output path for the CBOR transaction trace.
	Trace string `yaml:"trace"`
}

// loadConfig reads and parses the YAML config file at path.
func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Address > 0x7F {
		return nil, fmt.Errorf("parse %s: address %#x exceeds 7 bits", path, cfg.Address)
	}
	return &cfg, nil
}
