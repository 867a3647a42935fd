package scheduler

import "github.com/SeyhmusGuler/SCIRun/internal/network"

// ModuleFilter decides whether a module takes part in a scheduling pass. It
// must not have side effects.
type ModuleFilter func(network.Module) bool

// AllModules accepts every module.
func AllModules(network.Module) bool { return true }

// EnabledModules rejects modules that report themselves disabled.
func EnabledModules(m network.Module) bool {
	if d, ok := m.(network.Disabler); ok {
		return !d.Disabled()
	}
	return true
}
