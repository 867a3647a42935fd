package network

// PortDirection distinguishes input from output ports.
type PortDirection int

const (
	Input PortDirection = iota
	Output
)

func (d PortDirection) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// PortDescription is the static shape of a port. Datatype is only used for
// compatibility display; the scheduler never checks it.
type PortDescription struct {
	Name     string `yaml:"name" validate:"required"`
	Datatype string `yaml:"datatype" validate:"required"`
}

// Port is an indexed attachment point on exactly one module.
type Port struct {
	Module    ModuleID
	Index     int
	Direction PortDirection
	PortDescription
}
