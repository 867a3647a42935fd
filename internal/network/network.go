package network

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/SeyhmusGuler/SCIRun/internal/logger"
	scierrors "github.com/SeyhmusGuler/SCIRun/pkg/errors"
)

// ModuleLookupInfo selects a module kind from a ModuleFactory.
type ModuleLookupInfo struct {
	ModuleName   string
	CategoryName string
	PackageName  string
}

// ModuleFactory creates module instances. Whether unknown lookup info yields
// an error is the factory's contract.
type ModuleFactory interface {
	Create(info ModuleLookupInfo) (Module, error)
}

// ModuleFactoryFunc adapts a function to ModuleFactory.
type ModuleFactoryFunc func(info ModuleLookupInfo) (Module, error)

// Create calls f(info).
func (f ModuleFactoryFunc) Create(info ModuleLookupInfo) (Module, error) {
	return f(info)
}

// ConnectionOutputPort is the output endpoint passed to Connect.
type ConnectionOutputPort struct {
	Module Module
	Port   int
}

// ConnectionInputPort is the input endpoint passed to Connect.
type ConnectionInputPort struct {
	Module Module
	Port   int
}

// Connection is a validated edge from an output port to an input port. The
// referenced modules are not owned by the connection.
type Connection struct {
	ID         ConnectionID
	Out        Module
	OutputPort int
	In         Module
	InputPort  int
}

func newConnection(out Module, outPort int, in Module, inPort int, id ConnectionID) (*Connection, error) {
	if out == nil || in == nil {
		return nil, scierrors.NewInvalidArgumentError(id.String(), "connection endpoints must be non-null")
	}
	if outPort < 0 || outPort >= out.NumOutputPorts() {
		return nil, scierrors.NewInvalidArgumentError(id.String(), "output port does not exist")
	}
	if inPort < 0 || inPort >= in.NumInputPorts() {
		return nil, scierrors.NewInvalidArgumentError(id.String(), "input port does not exist")
	}
	return &Connection{ID: id, Out: out, OutputPort: outPort, In: in, InputPort: inPort}, nil
}

// Network owns the live module collection and connection map.
//
// Modules and connections are mutated only by the goroutine that owns the
// network. The error counter is the exception: modules increment it from
// worker goroutines through their error listener.
type Network struct {
	factory     ModuleFactory
	log         *logger.Logger
	modules     []Module
	detach      map[ModuleID]func()
	connections map[ConnectionID]*Connection
	errorCode   atomic.Int64
}

// New creates an empty network that obtains modules from factory.
func New(factory ModuleFactory, log *logger.Logger) *Network {
	return &Network{
		factory:     factory,
		log:         log.Component("network"),
		detach:      make(map[ModuleID]func()),
		connections: make(map[ConnectionID]*Connection),
	}
}

// AddModule creates a module through the factory, appends it, and wires its
// error events to the network error counter. Module ids must be valid and
// unique within the network.
func (n *Network) AddModule(info ModuleLookupInfo) (Module, error) {
	if n.factory == nil {
		return nil, scierrors.NewNullHandleError("network has no module factory")
	}
	module, err := n.factory.Create(info)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, scierrors.NewNullHandleError(fmt.Sprintf("factory returned no module for %q", info.ModuleName))
	}
	id := module.ID()
	if !id.Valid() {
		return nil, scierrors.NewInvalidArgumentError(id.String(), "module id needs a name and a non-negative number")
	}
	if n.LookupModule(id) != nil {
		return nil, scierrors.NewInvalidArgumentError(id.String(), "module id already in network")
	}

	n.modules = append(n.modules, module)
	n.detach[id] = module.ConnectErrorListener(n.IncrementErrorCode)
	n.log.With("module", id.String()).Debug("module added")
	return module, nil
}

// RemoveModule erases the module with the given id. Connections that
// reference it are left in place; see PruneDanglingConnections.
func (n *Network) RemoveModule(id ModuleID) bool {
	for i, m := range n.modules {
		if m.ID() != id {
			continue
		}
		n.modules = append(n.modules[:i], n.modules[i+1:]...)
		if detach, ok := n.detach[id]; ok {
			detach()
			delete(n.detach, id)
		}
		n.log.With("module", id.String()).Debug("module removed")
		return true
	}
	return false
}

// Connect links an output port to an input port. Nil modules are a hard
// error. Out-of-range ports, duplicates and construction failures return the
// empty ConnectionID with a nil error; callers must check IsEmpty.
func (n *Network) Connect(out ConnectionOutputPort, in ConnectionInputPort) (ConnectionID, error) {
	if out.Module == nil {
		return ConnectionID{}, scierrors.NewNullHandleError("cannot connect null output module")
	}
	if in.Module == nil {
		return ConnectionID{}, scierrors.NewNullHandleError("cannot connect null input module")
	}

	id := NewConnectionID(ConnectionDescription{
		Out: OutgoingConnectionDescription{ModuleID: out.Module.ID(), Port: out.Port},
		In:  IncomingConnectionDescription{ModuleID: in.Module.ID(), Port: in.Port},
	})
	log := n.log.With("connection", id.String())

	if out.Port < 0 || out.Port >= out.Module.NumOutputPorts() || in.Port < 0 || in.Port >= in.Module.NumInputPorts() {
		log.Debug("connection rejected: port does not exist")
		return ConnectionID{}, nil
	}

	if _, exists := n.connections[id]; exists {
		log.Debug("connection rejected: already connected")
		return ConnectionID{}, nil
	}

	conn, err := newConnection(out.Module, out.Port, in.Module, in.Port, id)
	if err != nil {
		log.Error(err, "connection rejected")
		return ConnectionID{}, nil
	}

	n.connections[id] = conn
	log.Debug("connection added")
	return id, nil
}

// Disconnect removes the connection keyed by id.
func (n *Network) Disconnect(id ConnectionID) bool {
	if _, ok := n.connections[id]; !ok {
		return false
	}
	delete(n.connections, id)
	return true
}

// ModuleCount returns the number of modules.
func (n *Network) ModuleCount() int {
	return len(n.modules)
}

// Module returns the module at index i in insertion order.
func (n *Network) Module(i int) (Module, error) {
	if i < 0 || i >= len(n.modules) {
		return nil, scierrors.NewOutOfRangeError("module", i, len(n.modules))
	}
	return n.modules[i], nil
}

// Modules returns a snapshot of the module collection.
func (n *Network) Modules() []Module {
	return append([]Module(nil), n.modules...)
}

// LookupModule returns the module with the given id, or nil.
func (n *Network) LookupModule(id ModuleID) Module {
	for _, m := range n.modules {
		if m.ID() == id {
			return m
		}
	}
	return nil
}

// LookupExecutable returns the executable behind id, or nil when the module
// is absent or cannot be executed.
func (n *Network) LookupExecutable(id ModuleID) Executable {
	exec, ok := n.LookupModule(id).(Executable)
	if !ok {
		return nil
	}
	return exec
}

// ConnectionCount returns the number of connections.
func (n *Network) ConnectionCount() int {
	return len(n.connections)
}

// Connections describes every connection, ordered by connection id so the
// result does not depend on map iteration.
func (n *Network) Connections() []ConnectionDescription {
	ids := n.sortedConnectionIDs()
	descs := make([]ConnectionDescription, 0, len(ids))
	for _, id := range ids {
		descs = append(descs, id.Describe())
	}
	return descs
}

// PruneDanglingConnections removes connections whose endpoints are no
// longer in the module collection and returns how many were removed.
func (n *Network) PruneDanglingConnections() int {
	removed := 0
	for id := range n.connections {
		desc := id.Describe()
		if n.LookupModule(desc.Out.ModuleID) == nil || n.LookupModule(desc.In.ModuleID) == nil {
			delete(n.connections, id)
			removed++
		}
	}
	return removed
}

// ErrorCode returns the cumulative number of module errors.
func (n *Network) ErrorCode() int {
	return int(n.errorCode.Load())
}

// IncrementErrorCode records one module error. Only the count is kept.
func (n *Network) IncrementErrorCode(id ModuleID) {
	n.errorCode.Add(1)
	n.log.With("module", id.String()).Warn("module reported an error")
}

func (n *Network) String() string {
	var b strings.Builder
	b.WriteString("~~~NETWORK DESCRIPTION~~~\n")
	b.WriteString("Modules:\n")
	for _, m := range n.modules {
		b.WriteString(m.ID().String())
		b.WriteString(", ")
	}
	b.WriteString("\nConnections:\n")
	for _, id := range n.sortedConnectionIDs() {
		b.WriteString(id.String())
		b.WriteString(", ")
	}
	return b.String()
}

func (n *Network) sortedConnectionIDs() []ConnectionID {
	ids := make([]ConnectionID, 0, len(n.connections))
	for id := range n.connections {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}
