package config

import (
	"fmt"

	"github.com/SeyhmusGuler/SCIRun/internal/network"
	"github.com/SeyhmusGuler/SCIRun/internal/validation"
	scierrors "github.com/SeyhmusGuler/SCIRun/pkg/errors"
)

// ValidateConfig performs schema and cross-reference validation. Every
// connection must name modules declared in the document and ports that
// exist on their types. Cycles are not checked here; scheduling reports
// them.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return scierrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validation.Validator().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	types := make(map[string]ModuleType, len(cfg.ModuleTypes))
	for i, mt := range cfg.ModuleTypes {
		if _, exists := types[mt.Name]; exists {
			return scierrors.NewValidationError(fieldFor("module_types", i, "name"), fmt.Sprintf("duplicate module type %q", mt.Name), nil)
		}
		types[mt.Name] = mt
	}

	instances := make(map[network.ModuleID]ModuleType, len(cfg.Modules))
	counters := make(map[string]int, len(types))
	for i, m := range cfg.Modules {
		mt, ok := types[m.Type]
		if !ok {
			return scierrors.NewValidationError(fieldFor("modules", i, "type"), fmt.Sprintf("references unknown module type %q", m.Type), nil)
		}
		instances[network.NewModuleID(m.Type, counters[m.Type])] = mt
		counters[m.Type]++
	}

	for i, c := range cfg.Connections {
		from := network.MustParseModuleID(c.From)
		to := network.MustParseModuleID(c.To)

		out, ok := instances[from]
		if !ok {
			return scierrors.NewValidationError(fieldFor("connections", i, "from"), fmt.Sprintf("references unknown module %q", c.From), nil)
		}
		in, ok := instances[to]
		if !ok {
			return scierrors.NewValidationError(fieldFor("connections", i, "to"), fmt.Sprintf("references unknown module %q", c.To), nil)
		}
		if c.Output >= len(out.Outputs) {
			return scierrors.NewValidationError(fieldFor("connections", i, "output"), fmt.Sprintf("module %s has no output port %d", c.From, c.Output), nil)
		}
		if c.Input >= len(in.Inputs) {
			return scierrors.NewValidationError(fieldFor("connections", i, "input"), fmt.Sprintf("module %s has no input port %d", c.To, c.Input), nil)
		}
	}

	return nil
}
