package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunVersion(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, run([]string{"version"}, &out, &errOut))
	assert.Equal(t, "Born linalg "+version+"\n", out.String())
}

func TestRunDet(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"det", "-shape", "2,2", "-data", "4,3,6,3"}, &out, &errOut)
	require.NoError(t, err)
	assert.Equal(t, "det ()\n  [-6]\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestRunBatchedDet(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"det", "-shape", "2,2,2", "-data", "1,0,0,1,2,0,0,3"}, &out, &errOut)
	require.NoError(t, err)
	assert.Equal(t, "det (2)\n  [1 6]\n", out.String())
}

func TestRunCholesky(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"chol", "-shape", "2,2", "-data", "4,2,2,2"}, &out, &errOut)
	require.NoError(t, err)
	assert.Equal(t, "L (2, 2)\n  [2 0]\n  [1 1]\n", out.String())
}

func TestRunLU(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"lu", "-shape", "2,2", "-data", "0,1,1,0"}, &out, &errOut)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "P (2, 2)\n  [0 1]\n  [1 0]\n")
	assert.Contains(t, out.String(), "U (2, 2)\n  [1 0]\n  [0 1]\n")
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{"no args", nil, true},
		{"unknown command", []string{"frobnicate", "-shape", "1", "-data", "1"}, true},
		{"bad flag", []string{"det", "-nope"}, true},
		{"missing shape", []string{"det", "-data", "1"}, false},
		{"bad data", []string{"det", "-shape", "1,1", "-data", "x"}, false},
		{"size mismatch", []string{"det", "-shape", "2,2", "-data", "1,2,3"}, false},
		{"not square", []string{"inv", "-shape", "2,3", "-data", "1,2,3,4,5,6"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			err := run(tt.args, &out, &errOut)
			require.Error(t, err)
			if tt.usage {
				assert.ErrorIs(t, err, errUsage)
			} else {
				assert.NotErrorIs(t, err, errUsage)
			}
		})
	}
}
