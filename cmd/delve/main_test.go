package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestLineParse(t *testing.T) {
	assert.Equal(t, "10 20 #L10-L20\n", execute(t, "line", "parse", "#L10-20"))
	assert.Equal(t, "no selection\n", execute(t, "line", "parse", "#readme"))
}

func TestLineExpand(t *testing.T) {
	assert.Equal(t, "#L10-L20\n", execute(t, "line", "expand", "20", "#L10"))
	assert.Equal(t, "#L5-L10\n", execute(t, "line", "expand", "5", "#L10-L20"))
}

func TestLineExpand_InvalidLine(t *testing.T) {
	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"line", "expand", "zero", "#L1"})
	assert.Error(t, cmd.Execute())
}

func TestVersion(t *testing.T) {
	assert.Contains(t, execute(t, "version"), "delve version dev")
}
