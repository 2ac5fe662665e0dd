package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	// Collect subcommand names.
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	// Verify expected subcommands are registered.
	expected := []string{"locate", "prob", "pod", "wait", "summary", "explore", "serve", "config"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "orcastat", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestLocateCommand_Flags(t *testing.T) {
	flag := locateCmd.Flags().Lookup("month")
	require.NotNil(t, flag, "locate command should have --month flag")
}

func TestProbCommand_Flags(t *testing.T) {
	for _, name := range []string{"month", "lat", "lon"} {
		flag := probCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "prob command should have --%s flag", name)
	}
}

func TestProbCommand_PartialCoordinatesRejected(t *testing.T) {
	cfg = testConfig()
	require.NoError(t, probCmd.Flags().Set("month", "6"))
	require.NoError(t, probCmd.Flags().Set("lat", "48.5"))

	err := probCmd.RunE(probCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--lat and --lon must be given together")
}

func TestPodCommand_Flags(t *testing.T) {
	for _, name := range []string{"month", "lat", "lon"} {
		flag := podCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "pod command should have --%s flag", name)
	}
}

func TestWaitCommand_Flags(t *testing.T) {
	flag := waitCmd.Flags().Lookup("hours")
	require.NotNil(t, flag, "wait command should have --hours flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{"january", 1, false},
		{"december", 12, false},
		{"zero", 0, true},
		{"thirteen", 13, true},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseMonth(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
