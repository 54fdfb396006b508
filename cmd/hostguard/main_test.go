package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestResolveCmd(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantURL    string
		wantSource string
		wantRejSrc []string
	}{
		{
			name:       "host header",
			args:       []string{"--host", "Example.COM."},
			wantURL:    "http://example.com",
			wantSource: "host_header",
		},
		{
			name: "trusted proxy",
			args: []string{
				"--peer", "10.0.0.1:5000", "--host", "internal",
				"--forwarded-host", "app.example.com", "--forwarded-proto", "https",
				"--trust-forwarded", "--trusted-proxy", "10.0.0.0/8",
			},
			wantURL:    "https://app.example.com",
			wantSource: "forwarded_host",
		},
		{
			name: "untrusted peer falls back to default",
			args: []string{
				"--peer", "203.0.113.7", "--forwarded-host", "evil.test",
				"--trust-forwarded", "--trusted-proxy", "10.0.0.0/8",
				"--default-host", "example.com",
			},
			wantURL:    "http://example.com",
			wantSource: "default",
			wantRejSrc: []string{"forwarded_host"},
		},
		{
			name:       "not allowed",
			args:       []string{"--host", "evil.test", "--allow", "example.com"},
			wantSource: "none",
			wantRejSrc: []string{"host_header"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"resolve", "--json"}, tt.args...)...)
			require.NoError(t, err)

			var res resolutionJSON
			require.NoError(t, json.Unmarshal([]byte(out), &res))
			assert.Equal(t, tt.wantURL, res.URL)
			assert.Equal(t, tt.wantURL != "", res.HasURL)
			assert.Equal(t, tt.wantSource, res.Source)

			var sources []string
			for _, rej := range res.Rejections {
				sources = append(sources, rej.Source)
			}
			assert.Equal(t, tt.wantRejSrc, sources)
		})
	}
}

func TestResolveCmd_ConfiguredServerName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostguard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
resolver:
  server_name: api.internal
  default_host: fallback.example
`), 0o600))

	tests := []struct {
		name       string
		args       []string
		wantURL    string
		wantSource string
	}{
		{
			name:       "config server name",
			args:       nil,
			wantURL:    "http://api.internal",
			wantSource: "server_name",
		},
		{
			name:       "host header beats server name",
			args:       []string{"--host", "www.example.com"},
			wantURL:    "http://www.example.com",
			wantSource: "host_header",
		},
		{
			name:       "flag overrides config",
			args:       []string{"--server-name", "edge.internal"},
			wantURL:    "http://edge.internal",
			wantSource: "server_name",
		},
		{
			name:       "empty flag disables server name",
			args:       []string{"--server-name", ""},
			wantURL:    "http://fallback.example",
			wantSource: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"resolve", "--json", "--config", path}, tt.args...)...)
			require.NoError(t, err)

			var res resolutionJSON
			require.NoError(t, json.Unmarshal([]byte(out), &res))
			assert.Equal(t, tt.wantURL, res.URL)
			assert.Equal(t, tt.wantSource, res.Source)
		})
	}
}

func TestResolveCmd_Text(t *testing.T) {
	out, err := execute(t, "resolve", "--host", "bad host")
	require.NoError(t, err)

	assert.Contains(t, out, "URL:     (none)")
	assert.Contains(t, out, "Rejected host_header")
}

func TestResolveCmd_InvalidPolicy(t *testing.T) {
	_, err := execute(t, "resolve", "--trusted-proxy", "not-an-ip")
	require.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}
