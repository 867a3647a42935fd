package network

import (
	"context"
	"fmt"
	"sync/atomic"

	scierrors "github.com/SeyhmusGuler/SCIRun/pkg/errors"
)

// Module is the capability set the network and scheduler need from a
// computational unit. Concrete kinds are chosen by a ModuleFactory.
type Module interface {
	ID() ModuleID
	NumInputPorts() int
	NumOutputPorts() int
	InputPorts() []Port
	OutputPorts() []Port

	// Connect* register execute-event listeners and return a func that
	// removes the listener again.
	ConnectExecuteBegins(Listener) func()
	ConnectExecuteEnds(Listener) func()
	ConnectErrorListener(Listener) func()
}

// Executable is implemented by modules that an execution driver can run.
type Executable interface {
	Execute(ctx context.Context) error
}

// Disabler is implemented by modules that can be switched off for a
// scheduling pass.
type Disabler interface {
	Disabled() bool
}

// ExecuteFunc is the work a BasicModule performs when executed.
type ExecuteFunc func(ctx context.Context, m *BasicModule) error

// BasicModule is the stock Module implementation produced by Builder.
type BasicModule struct {
	id       ModuleID
	inputs   []Port
	outputs  []Port
	execute  ExecuteFunc
	disabled atomic.Bool

	begins signal
	ends   signal
	errs   signal
}

// ID returns the module identity.
func (m *BasicModule) ID() ModuleID { return m.id }

// NumInputPorts returns the number of input ports.
func (m *BasicModule) NumInputPorts() int { return len(m.inputs) }

// NumOutputPorts returns the number of output ports.
func (m *BasicModule) NumOutputPorts() int { return len(m.outputs) }

// InputPorts returns a copy of the input port list.
func (m *BasicModule) InputPorts() []Port { return append([]Port(nil), m.inputs...) }

// OutputPorts returns a copy of the output port list.
func (m *BasicModule) OutputPorts() []Port { return append([]Port(nil), m.outputs...) }

func (m *BasicModule) ConnectExecuteBegins(l Listener) func() { return m.begins.connect(l) }
func (m *BasicModule) ConnectExecuteEnds(l Listener) func()   { return m.ends.connect(l) }
func (m *BasicModule) ConnectErrorListener(l Listener) func() { return m.errs.connect(l) }

// Disabled reports whether the module is excluded from scheduling.
func (m *BasicModule) Disabled() bool { return m.disabled.Load() }

// SetDisabled toggles participation in scheduling.
func (m *BasicModule) SetDisabled(disabled bool) { m.disabled.Store(disabled) }

// Execute runs the module's work, raising begin, error and end events. A
// panic in the work function is reported as an error.
func (m *BasicModule) Execute(ctx context.Context) (err error) {
	m.begins.emit(m.id)
	defer func() {
		if r := recover(); r != nil {
			err = scierrors.NewExecutionError(m.id.String(), fmt.Errorf("panic: %v", r))
		}
		if err != nil {
			m.errs.emit(m.id)
		}
		m.ends.emit(m.id)
	}()

	if err := ctx.Err(); err != nil {
		return scierrors.NewExecutionError(m.id.String(), err)
	}
	if m.execute == nil {
		return nil
	}
	if err := m.execute(ctx, m); err != nil {
		return scierrors.NewExecutionError(m.id.String(), err)
	}
	return nil
}

func (m *BasicModule) String() string {
	return m.id.String()
}

// Builder assembles a BasicModule.
type Builder struct {
	name    string
	number  int
	inputs  []PortDescription
	outputs []PortDescription
	execute ExecuteFunc
}

// NewBuilder returns an empty module builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithName sets the module name. The id number defaults to 0.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithID sets both parts of the module id.
func (b *Builder) WithID(id ModuleID) *Builder {
	b.name = id.Name
	b.number = id.Number
	return b
}

// AddInputPort appends an input port.
func (b *Builder) AddInputPort(name, datatype string) *Builder {
	b.inputs = append(b.inputs, PortDescription{Name: name, Datatype: datatype})
	return b
}

// AddOutputPort appends an output port.
func (b *Builder) AddOutputPort(name, datatype string) *Builder {
	b.outputs = append(b.outputs, PortDescription{Name: name, Datatype: datatype})
	return b
}

// WithExecute sets the work performed by Execute.
func (b *Builder) WithExecute(fn ExecuteFunc) *Builder {
	b.execute = fn
	return b
}

// Build creates the module.
func (b *Builder) Build() (*BasicModule, error) {
	if b.name == "" {
		return nil, scierrors.NewInvalidArgumentError("", "module name is required")
	}
	if b.number < 0 {
		return nil, scierrors.NewInvalidArgumentError(b.name, "module number must be non-negative")
	}

	id := ModuleID{Name: b.name, Number: b.number}
	m := &BasicModule{id: id, execute: b.execute}
	for i, d := range b.inputs {
		m.inputs = append(m.inputs, Port{Module: id, Index: i, Direction: Input, PortDescription: d})
	}
	for i, d := range b.outputs {
		m.outputs = append(m.outputs, Port{Module: id, Index: i, Direction: Output, PortDescription: d})
	}
	return m, nil
}

var (
	_ Module     = (*BasicModule)(nil)
	_ Executable = (*BasicModule)(nil)
	_ Disabler   = (*BasicModule)(nil)
)
