package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		configData  string
		expectError bool
		errorMsg    string
	}{
		{
			name: "valid config",
			configData: `
confluence:
  base_url: "https://example.atlassian.net"
  username: "test@example.com"
  api_token: "test_token"
  space_key: "TEST"
cache:
  redis_addr: "localhost:6379"
  ttl: 15m
log:
  level: debug
  pretty: true
`,
			expectError: false,
		},
		{
			name: "valid config without optional sections",
			configData: `
confluence:
  base_url: "https://example.atlassian.net"
  username: "test@example.com"
  api_token: "test_token"
`,
			expectError: false,
		},
		{
			name: "legacy token replaces username and api_token",
			configData: `
confluence:
  base_url: "https://example.atlassian.net"
legacy:
  url: "https://example.atlassian.net/rpc"
  token: "rpc_token"
`,
			expectError: false,
		},
		{
			name: "legacy token without url",
			configData: `
confluence:
  base_url: "https://example.atlassian.net"
legacy:
  token: "rpc_token"
`,
			expectError: true,
			errorMsg:    "legacy.url is required when legacy.token is set",
		},
		{
			name: "missing base_url",
			configData: `
confluence:
  username: "test@example.com"
  api_token: "test_token"
`,
			expectError: true,
			errorMsg:    "confluence.base_url is required",
		},
		{
			name: "missing username",
			configData: `
confluence:
  base_url: "https://example.atlassian.net"
  api_token: "test_token"
`,
			expectError: true,
			errorMsg:    "confluence.username is required",
		},
		{
			name: "missing api_token",
			configData: `
confluence:
  base_url: "https://example.atlassian.net"
  username: "test@example.com"
`,
			expectError: true,
			errorMsg:    "confluence.api_token is required",
		},
		{
			name: "invalid yaml",
			configData: `
confluence:
  base_url: "https://example.atlassian.net"
  username: "test@example.com"
  api_token: [invalid
`,
			expectError: true,
			errorMsg:    "failed to parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := Load(writeConfig(t, tt.configData))

			if tt.expectError {
				if err == nil {
					t.Fatalf("Expected error but got none")
				}
				if tt.errorMsg != "" && !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error message to contain '%s', got '%s'", tt.errorMsg, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if config == nil {
				t.Fatal("Config is nil")
			}
		})
	}
}

func TestLoadCacheSection(t *testing.T) {
	config, err := Load(writeConfig(t, `
confluence:
  base_url: "https://example.atlassian.net"
  username: "test@example.com"
  api_token: "test_token"
cache:
  redis_addr: "localhost:6379"
  key_prefix: "confluo"
  ttl: 15m
`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if config.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("Unexpected redis_addr: %s", config.Cache.RedisAddr)
	}
	if config.Cache.KeyPrefix != "confluo" {
		t.Errorf("Unexpected key_prefix: %s", config.Cache.KeyPrefix)
	}
	if config.Cache.TTL != 15*time.Minute {
		t.Errorf("Unexpected ttl: %s", config.Cache.TTL)
	}
}

func TestLoadForSpace(t *testing.T) {
	tests := []struct {
		name        string
		configData  string
		expectError bool
		errorMsg    string
	}{
		{
			name: "valid config with space_key",
			configData: `
confluence:
  base_url: "https://example.atlassian.net"
  username: "test@example.com"
  api_token: "test_token"
  space_key: "TEST"
`,
			expectError: false,
		},
		{
			name: "missing space_key",
			configData: `
confluence:
  base_url: "https://example.atlassian.net"
  username: "test@example.com"
  api_token: "test_token"
`,
			expectError: true,
			errorMsg:    "confluence.space_key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadForSpace(writeConfig(t, tt.configData))

			if tt.expectError {
				if err == nil {
					t.Fatalf("Expected error but got none")
				}
				if tt.errorMsg != "" && !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error message to contain '%s', got '%s'", tt.errorMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
		})
	}
}

func TestUseLegacy(t *testing.T) {
	config := &Config{}
	if config.UseLegacy() {
		t.Error("UseLegacy should be false without a token")
	}

	config.Legacy.Token = "rpc_token"
	if !config.UseLegacy() {
		t.Error("UseLegacy should be true with a token")
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("Expected error for nonexistent file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Unexpected error message: %v", err)
	}
}
