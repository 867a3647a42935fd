package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvalidArgumentErrorNamesArgument(t *testing.T) {
	t.Parallel()

	err := NewInvalidArgumentError("ComputeSVD", "module id requires a :<number> suffix")

	var invalidErr *InvalidArgumentError
	require.ErrorAs(t, err, &invalidErr)
	require.Equal(t, "ComputeSVD", invalidErr.Argument)
	require.Contains(t, err.Error(), "ComputeSVD")
}

func TestNullHandleErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewNullHandleError("cannot connect null output module")

	var nullErr *NullHandleError
	require.ErrorAs(t, err, &nullErr)
	require.Equal(t, "null handle: cannot connect null output module", err.Error())
}

func TestOutOfRangeErrorReportsBounds(t *testing.T) {
	t.Parallel()

	err := NewOutOfRangeError("module", 4, 2)
	require.Equal(t, "module index 4 out of range [0,2)", err.Error())
}

func TestCycleErrorRendersPathAndCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("back edge")
	err := NewCycleError([]string{"A:0", "B:0", "A:0"}, cause)

	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	require.Equal(t, []string{"A:0", "B:0", "A:0"}, cycleErr.Path)
	require.True(t, stdErrors.Is(err, cause))
	require.Equal(t, "network has cycles: A:0 -> B:0 -> A:0: back edge", err.Error())
}

func TestCycleErrorCopiesPath(t *testing.T) {
	t.Parallel()

	path := []string{"A:0", "A:0"}
	err := NewCycleError(path, nil)
	path[0] = "mutated"

	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	require.Equal(t, "A:0", cycleErr.Path[0])
}

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("network.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "network.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "network.yaml:12")
}

func TestValidationErrorAggregatesFields(t *testing.T) {
	t.Parallel()

	err := NewValidationError("connections[1].to", "references unknown module", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "connections[1].to", validationErr.Field)
	require.Contains(t, validationErr.Message, "references unknown module")
}

func TestExecutionErrorIncludesModuleContext(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("solver diverged")
	err := NewExecutionError("SolveLinearSystem:0", underlying)

	var executionErr *ExecutionError
	require.ErrorAs(t, err, &executionErr)
	require.Equal(t, "SolveLinearSystem:0", executionErr.ModuleID)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestNilReceiversRenderEmpty(t *testing.T) {
	t.Parallel()

	var cycleErr *CycleError
	require.Equal(t, "", cycleErr.Error())
	require.Nil(t, cycleErr.Unwrap())

	var execErr *ExecutionError
	require.Equal(t, "", execErr.Error())
	require.Nil(t, execErr.Unwrap())
}
