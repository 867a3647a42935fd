package network

import (
	"fmt"
	"regexp"
	"strconv"

	scierrors "github.com/SeyhmusGuler/SCIRun/pkg/errors"
)

var moduleIDPattern = regexp.MustCompile(`^(.+):(\d+)$`)

// ModuleID is the stable identity of a module instance: a name plus a
// disambiguating number, rendered as "<Name>:<Number>".
type ModuleID struct {
	Name   string
	Number int
}

// NewModuleID builds a ModuleID from its parts. It does not validate them;
// number must be non-negative for the id to round-trip through
// ParseModuleID. Network.AddModule rejects ids for which Valid is false.
func NewModuleID(name string, number int) ModuleID {
	return ModuleID{Name: name, Number: number}
}

// ParseModuleID parses "<Name>:<Number>". Input without a trailing
// ":<digits>" is rejected with an InvalidArgumentError.
func ParseModuleID(s string) (ModuleID, error) {
	matches := moduleIDPattern.FindStringSubmatch(s)
	if matches == nil {
		return ModuleID{}, scierrors.NewInvalidArgumentError(s, "module id requires a :<number> suffix")
	}

	number, err := strconv.Atoi(matches[2])
	if err != nil {
		return ModuleID{}, &scierrors.InvalidArgumentError{Argument: s, Message: "module number out of range", Err: err}
	}

	return ModuleID{Name: matches[1], Number: number}, nil
}

// MustParseModuleID is like ParseModuleID but panics on malformed input.
func MustParseModuleID(s string) ModuleID {
	id, err := ParseModuleID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ModuleID) String() string {
	return fmt.Sprintf("%s:%d", id.Name, id.Number)
}

// Valid reports whether id has a name and a non-negative number, which is
// exactly when String parses back to id.
func (id ModuleID) Valid() bool {
	return id.Name != "" && id.Number >= 0
}

// IsZero reports whether id is the unset value.
func (id ModuleID) IsZero() bool {
	return id == ModuleID{}
}
