package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/iksnae/eight-sleep/testutil"
)

// fakeAccount is a seeded FakeAPI plus a config file pointing at it
type fakeAccount struct {
	api        *testutil.FakeAPI
	dir        string
	configPath string
	cachePath  string
}

func newFakeAccount(t *testing.T) *fakeAccount {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	testutil.SeedAccount(api)

	dir := testutil.CreateTempDir(t)
	cachePath := filepath.Join(dir, "cache", "session.db")
	config := fmt.Sprintf(`email: alex@example.com
password: hunter2
timezone: UTC
unit: celsius
log_level: error
auth_url: %s
client_api_url: %s
app_api_url: %s
token_cache: %s
`, api.AuthURL(), api.ClientAPIURL(), api.AppAPIURL(), cachePath)

	return &fakeAccount{
		api:        api,
		dir:        dir,
		configPath: testutil.WriteFile(t, dir, "config.yaml", config),
		cachePath:  cachePath,
	}
}

// run executes the root command with the account's config
func (a *fakeAccount) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runCommand(t, append([]string{"--config", a.configPath, "--unit", "celsius"}, args...)...)
}

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
