package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "parcel-cli", rootCmd.Name())
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.Empty(t, rootCmd.Commands(), "address is the only input; no subcommands")
}

func TestRootCommand_RequiresExactlyOneAddress(t *testing.T) {
	require.NotNil(t, rootCmd.Args)

	assert.Error(t, rootCmd.Args(rootCmd, []string{}))
	assert.Error(t, rootCmd.Args(rootCmd, []string{"133 State St", "Montpelier"}))
	assert.NoError(t, rootCmd.Args(rootCmd, []string{"133 State St, Montpelier, VT"}))
}

func TestRootCommand_NoExtraFlags(t *testing.T) {
	assert.False(t, rootCmd.Flags().HasFlags())
}
