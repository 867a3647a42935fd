package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const diamondNetwork = `version: "1.0.0"
name: diamond
settings:
  parallel: 2
module_types:
  - name: Source
    outputs:
      - {name: Out, datatype: Field}
  - name: Filter
    inputs:
      - {name: In, datatype: Field}
    outputs:
      - {name: Out, datatype: Field}
  - name: Join
    inputs:
      - {name: Left, datatype: Field}
      - {name: Right, datatype: Field}
modules:
  - type: Source
  - type: Filter
  - type: Filter
  - type: Join
  - type: Filter
    disabled: true
connections:
  - {from: "Source:0", output: 0, to: "Filter:0", input: 0}
  - {from: "Source:0", output: 0, to: "Filter:1", input: 0}
  - {from: "Filter:0", output: 0, to: "Join:0", input: 0}
  - {from: "Filter:1", output: 0, to: "Join:0", input: 1}
`

func writeNetwork(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "network.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
