package factory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/SeyhmusGuler/SCIRun/internal/network"
	"github.com/SeyhmusGuler/SCIRun/internal/validation"
	scierrors "github.com/SeyhmusGuler/SCIRun/pkg/errors"
)

// ModuleDescription declares a module kind: its lookup name, its ports and
// optionally the work it performs.
type ModuleDescription struct {
	Name        string                    `validate:"required,module_name"`
	Category    string
	Package     string
	InputPorts  []network.PortDescription `validate:"omitempty,dive"`
	OutputPorts []network.PortDescription `validate:"omitempty,dive"`
	Execute     network.ExecuteFunc       `validate:"-"`
}

// Registry is a ModuleFactory backed by registered descriptions. Instances
// of the same kind are numbered from 0 in creation order.
type Registry struct {
	mu           sync.Mutex
	descriptions map[string]ModuleDescription
	counters     map[string]int
	validate     *validator.Validate
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		descriptions: make(map[string]ModuleDescription),
		counters:     make(map[string]int),
		validate:     validation.Validator(),
	}
}

// Register adds a module description.
func (r *Registry) Register(desc ModuleDescription) error {
	if err := r.validate.Struct(desc); err != nil {
		return scierrors.NewValidationError("module "+desc.Name, "invalid module description", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptions[desc.Name]; exists {
		return scierrors.NewValidationError("module "+desc.Name, "module already registered", nil)
	}
	r.descriptions[desc.Name] = desc
	return nil
}

// Lookup returns the description registered for info.
func (r *Registry) Lookup(info network.ModuleLookupInfo) (ModuleDescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	desc, ok := r.descriptions[info.ModuleName]
	if !ok {
		return ModuleDescription{}, scierrors.NewInvalidArgumentError(info.ModuleName, "no module registered")
	}
	return desc, nil
}

// Names lists registered module names in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.descriptions))
	for name := range r.descriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds the next instance of the module kind named by info.
func (r *Registry) Create(info network.ModuleLookupInfo) (network.Module, error) {
	desc, err := r.Lookup(info)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	number := r.counters[desc.Name]
	r.counters[desc.Name]++
	r.mu.Unlock()

	builder := network.NewBuilder().
		WithID(network.NewModuleID(desc.Name, number)).
		WithExecute(desc.Execute)
	for _, p := range desc.InputPorts {
		builder.AddInputPort(p.Name, p.Datatype)
	}
	for _, p := range desc.OutputPorts {
		builder.AddOutputPort(p.Name, p.Datatype)
	}

	module, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build module %s: %w", desc.Name, err)
	}
	return module, nil
}

var _ network.ModuleFactory = (*Registry)(nil)
