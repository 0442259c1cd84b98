// Package setup registers the server with Claude Desktop by inserting an
// mcpServers entry into claude_desktop_config.json.
package setup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const serverEntry = "intervals-icu"

// ServerConfig is the mcpServers entry written for this server.
type ServerConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// Result holds the outcome of an installation.
type Result struct {
	Destination string
	Created     bool // true when the config file did not exist before
}

// Install writes the intervals-icu entry for the given binary path into
// Claude Desktop's config, preserving everything else in the file.
func Install(binPath string) (*Result, error) {
	path := claudeConfigPath()
	if path == "" {
		return nil, fmt.Errorf("could not resolve the Claude Desktop config directory")
	}

	cfg := map[string]json.RawMessage{}
	created := true
	if data, err := os.ReadFile(path); err == nil {
		created = false
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse existing config %s: %w", path, err)
		}
	}

	servers := map[string]ServerConfig{}
	if raw, ok := cfg["mcpServers"]; ok {
		if err := json.Unmarshal(raw, &servers); err != nil {
			return nil, fmt.Errorf("parse mcpServers in %s: %w", path, err)
		}
	}
	servers[serverEntry] = ServerConfig{
		Command: binPath,
		Env: map[string]string{
			"ATHLETE_ID": os.Getenv("ATHLETE_ID"),
			"API_KEY":    os.Getenv("API_KEY"),
		},
	}

	rawServers, err := json.Marshal(servers)
	if err != nil {
		return nil, fmt.Errorf("encode mcpServers: %w", err)
	}
	cfg["mcpServers"] = rawServers

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	return &Result{Destination: path, Created: created}, nil
}

// ─── Platform paths ──────────────────────────────────────────────────────────

func claudeConfigPath() string {
	home, _ := os.UserHomeDir()

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Claude", "claude_desktop_config.json")
		}
		return filepath.Join(home, "AppData", "Roaming", "Claude", "claude_desktop_config.json")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "Claude", "claude_desktop_config.json")
		}
		return filepath.Join(home, ".config", "Claude", "claude_desktop_config.json")
	}
}
