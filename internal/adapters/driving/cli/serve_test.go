package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{"transport", "t", "stdio"},
		{"port", "p", "0"},
		{"debug", "", "false"},
		{"cody", "", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := serveCmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.def, flag.DefValue)
		})
	}
}

func TestServeCmd_RejectsUnknownTransport(t *testing.T) {
	t.Cleanup(func() { serveTransport = transportStdio })

	_, err := executeCommand(t, "serve", "--transport", "grpc")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown transport "grpc"`)
}

func TestServeCmd_MissingConfig(t *testing.T) {
	_, err := executeCommand(t, "serve", "--config", t.TempDir()+"/missing.toml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration error")
	assert.Contains(t, err.Error(), "config init")
}
