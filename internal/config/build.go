package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SeyhmusGuler/SCIRun/internal/factory"
	"github.com/SeyhmusGuler/SCIRun/internal/logger"
	"github.com/SeyhmusGuler/SCIRun/internal/network"
	scierrors "github.com/SeyhmusGuler/SCIRun/pkg/errors"
)

// BuildNetwork registers the declared module types, instantiates the
// modules in document order and wires the connections. A connection the
// network rejects is reported as a ValidationError.
func BuildNetwork(cfg *Config, log *logger.Logger) (*network.Network, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	registry := factory.NewRegistry()
	for i, mt := range cfg.ModuleTypes {
		if err := registry.Register(describe(mt)); err != nil {
			return nil, scierrors.NewValidationError(fieldFor("module_types", i, "name"), "cannot register module type", err)
		}
	}

	net := network.New(registry, log)
	for i, m := range cfg.Modules {
		module, err := net.AddModule(network.ModuleLookupInfo{ModuleName: m.Type})
		if err != nil {
			return nil, scierrors.NewValidationError(fieldFor("modules", i, "type"), "cannot create module", err)
		}
		if d, ok := module.(interface{ SetDisabled(bool) }); ok {
			d.SetDisabled(m.Disabled)
		}
	}

	for i, c := range cfg.Connections {
		out := net.LookupModule(network.MustParseModuleID(c.From))
		in := net.LookupModule(network.MustParseModuleID(c.To))
		id, err := net.Connect(
			network.ConnectionOutputPort{Module: out, Port: c.Output},
			network.ConnectionInputPort{Module: in, Port: c.Input},
		)
		if err != nil {
			return nil, scierrors.NewValidationError(fieldFor("connections", i, "from"), "cannot connect modules", err)
		}
		if id.IsEmpty() {
			return nil, scierrors.NewValidationError(fieldFor("connections", i, "from"), fmt.Sprintf("connection %s:%d -> %s:%d was rejected", c.From, c.Output, c.To, c.Input), nil)
		}
	}

	return net, nil
}

func describe(mt ModuleType) factory.ModuleDescription {
	return factory.ModuleDescription{
		Name:        mt.Name,
		Category:    mt.Category,
		Package:     mt.Package,
		InputPorts:  mt.Inputs,
		OutputPorts: mt.Outputs,
		Execute:     simulatedWork(mt.SleepDuration(), mt.Fail),
	}
}

// simulatedWork waits for sleep, or until ctx is done, then fails with
// message when one is set.
func simulatedWork(sleep time.Duration, message string) network.ExecuteFunc {
	if sleep == 0 && message == "" {
		return nil
	}
	return func(ctx context.Context, _ *network.BasicModule) error {
		if sleep > 0 {
			timer := time.NewTimer(sleep)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if message != "" {
			return errors.New(message)
		}
		return nil
	}
}
