package config

import (
	"time"

	"github.com/SeyhmusGuler/SCIRun/internal/network"
)

// Config is a network description document.
type Config struct {
	Version     string       `yaml:"version" validate:"required,semver"`
	Name        string       `yaml:"name,omitempty" validate:"omitempty,max=100"`
	Settings    Settings     `yaml:"settings,omitempty"`
	ModuleTypes []ModuleType `yaml:"module_types" validate:"required,min=1,dive"`
	Modules     []Module     `yaml:"modules" validate:"omitempty,dive"`
	Connections []Connection `yaml:"connections,omitempty" validate:"omitempty,dive"`
}

// Settings holds run parameters.
type Settings struct {
	Parallel int    `yaml:"parallel,omitempty" validate:"omitempty,min=1,max=256"`
	LogLevel string `yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
}

// ModuleType declares a module kind and its ports. Sleep and Fail give the
// kind simulated work when the network is run.
type ModuleType struct {
	Name     string                    `yaml:"name" validate:"required,module_name"`
	Category string                    `yaml:"category,omitempty"`
	Package  string                    `yaml:"package,omitempty"`
	Inputs   []network.PortDescription `yaml:"inputs,omitempty" validate:"omitempty,dive"`
	Outputs  []network.PortDescription `yaml:"outputs,omitempty" validate:"omitempty,dive"`
	Sleep    string                    `yaml:"sleep,omitempty" validate:"omitempty,duration"`
	Fail     string                    `yaml:"fail,omitempty"`
}

// SleepDuration returns the parsed Sleep value, zero when unset.
func (t ModuleType) SleepDuration() time.Duration {
	d, err := time.ParseDuration(t.Sleep)
	if err != nil {
		return 0
	}
	return d
}

// Module is one instance of a declared type. Instances of a type are
// numbered from 0 in document order, so the second ReadMatrix is
// "ReadMatrix:1".
type Module struct {
	Type     string `yaml:"type" validate:"required,module_name"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// Connection links an output port of one module to an input port of
// another, both referenced by module id.
type Connection struct {
	From   string `yaml:"from" validate:"required,module_id"`
	Output int    `yaml:"output" validate:"min=0"`
	To     string `yaml:"to" validate:"required,module_id"`
	Input  int    `yaml:"input" validate:"min=0"`
}

// ParallelOrDefault returns Settings.Parallel, or fallback when unset.
func (s Settings) ParallelOrDefault(fallback int) int {
	if s.Parallel > 0 {
		return s.Parallel
	}
	return fallback
}
