package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{
			name:     "empty address",
			addr:     NetAddress{},
			expected: "",
		},
		{
			name:     "localhost with port",
			addr:     NetAddress{Host: "localhost", Port: 8080},
			expected: "localhost:8080",
		},
		{
			name:     "IP address with port",
			addr:     NetAddress{Host: "127.0.0.1", Port: 9090},
			expected: "127.0.0.1:9090",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests parsing of host:port strings
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantHost string
		wantPort int
	}{
		{name: "valid localhost", input: "localhost:8080", wantHost: "localhost", wantPort: 8080},
		{name: "valid IP", input: "127.0.0.1:9090", wantHost: "127.0.0.1", wantPort: 9090},
		{name: "missing port", input: "localhost", wantErr: true},
		{name: "non-numeric port", input: "localhost:abc", wantErr: true},
		{name: "zero port", input: "localhost:0", wantErr: true},
		{name: "bad host", input: "not an ip:8080", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, addr.Host)
			assert.Equal(t, tt.wantPort, addr.Port)
		})
	}
}

// TestParseFlags verifies that every flag lands in the right config field.
func TestParseFlags(t *testing.T) {
	// Reset flag.CommandLine for the test
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	os.Args = []string{
		"test",
		"-a", "localhost:8081",
		"-driver", "sqlite",
		"-d", "/tmp/users.db",
		"-c", "/etc/user-service.json",
		"-version", "9.9.9",
		"-request-timeout", "45s",
	}

	cfg := ParseFlags()

	assert.Equal(t, "localhost:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, "sqlite", cfg.Storage.DB.Driver)
	assert.Equal(t, "/tmp/users.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/etc/user-service.json", cfg.JSONFilePath)
	assert.Equal(t, "9.9.9", cfg.App.Version)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
}

// TestParseFlags_Defaults verifies zero values when no flags are passed.
func TestParseFlags_Defaults(t *testing.T) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	os.Args = []string{"test"}

	cfg := ParseFlags()

	assert.Empty(t, cfg.Server.HTTPAddress)
	assert.Empty(t, cfg.Storage.DB.Driver)
	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Zero(t, cfg.Server.RequestTimeout)
}
