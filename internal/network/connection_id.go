package network

import "fmt"

// OutgoingConnectionDescription names the output side of a connection.
type OutgoingConnectionDescription struct {
	ModuleID ModuleID
	Port     int
}

// IncomingConnectionDescription names the input side of a connection.
type IncomingConnectionDescription struct {
	ModuleID ModuleID
	Port     int
}

// ConnectionDescription is the plain record exposed to editors and
// serializers: output module id and port, input module id and port.
type ConnectionDescription struct {
	Out OutgoingConnectionDescription
	In  IncomingConnectionDescription
}

func (d ConnectionDescription) String() string {
	return NewConnectionID(d).String()
}

// ConnectionID identifies a connection structurally by its endpoints. The
// zero value is the empty id returned when no connection was created.
type ConnectionID struct {
	desc ConnectionDescription
}

// NewConnectionID derives the canonical id for a connection description.
func NewConnectionID(desc ConnectionDescription) ConnectionID {
	return ConnectionID{desc: desc}
}

// IsEmpty reports whether the id denotes "no connection created".
func (c ConnectionID) IsEmpty() bool {
	return c == ConnectionID{}
}

// Describe returns the endpoints encoded in the id.
func (c ConnectionID) Describe() ConnectionDescription {
	return c.desc
}

func (c ConnectionID) String() string {
	if c.IsEmpty() {
		return ""
	}
	return fmt.Sprintf("%s_p#%d_@to@_%s_p#%d",
		c.desc.Out.ModuleID, c.desc.Out.Port,
		c.desc.In.ModuleID, c.desc.In.Port)
}
