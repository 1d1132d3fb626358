package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/eight-sleep/testutil"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{
			name:    "version flag",
			args:    []string{"--version"},
			wantErr: false,
		},
		{
			name:    "help flag",
			args:    []string{"--help"},
			wantErr: false,
		},
		{
			name:    "nonexistent command",
			args:    []string{"nonexistent-command"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCommand(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("rootCmd.Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRootCommand_MissingExplicitConfig(t *testing.T) {
	missing := filepath.Join(testutil.CreateTempDir(t), "nope.yaml")
	_, _, err := runCommand(t, "--config", missing, "convert", "raw", "0")
	if err == nil || !strings.Contains(err.Error(), "failed to read config") {
		t.Errorf("Execute() error = %v, want missing config error", err)
	}
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	account := newFakeAccount(t)
	_, _, err := account.run(t, "--log-level", "loud", "convert", "raw", "0")
	// reset the persistent flag for the tests that follow
	_ = rootCmd.PersistentFlags().Set("log-level", "error")
	if err == nil || !strings.Contains(err.Error(), "log level") {
		t.Errorf("Execute() error = %v, want log level error", err)
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	want := []string{"status", "users", "device", "export", "heat", "on", "off", "away", "convert", "login", "logout", "healthcheck"}
	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q is not registered", name)
		}
	}
}
