package scheduler

import (
	"slices"
	"strings"

	"github.com/SeyhmusGuler/SCIRun/internal/network"
)

// ModuleExecutionOrder is a serial schedule: one module after another.
type ModuleExecutionOrder struct {
	modules []network.ModuleID
}

// NewModuleExecutionOrder wraps ids in a serial order.
func NewModuleExecutionOrder(ids []network.ModuleID) ModuleExecutionOrder {
	return ModuleExecutionOrder{modules: append([]network.ModuleID(nil), ids...)}
}

// Modules returns the ordered ids.
func (o ModuleExecutionOrder) Modules() []network.ModuleID {
	return append([]network.ModuleID(nil), o.modules...)
}

// Len returns the number of scheduled modules.
func (o ModuleExecutionOrder) Len() int { return len(o.modules) }

// Equal reports whether both orders list the same ids in the same order.
func (o ModuleExecutionOrder) Equal(other ModuleExecutionOrder) bool {
	return slices.Equal(o.modules, other.modules)
}

func (o ModuleExecutionOrder) String() string {
	var b strings.Builder
	for _, id := range o.modules {
		b.WriteString(id.String())
		b.WriteByte('\n')
	}
	return b.String()
}
