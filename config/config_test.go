package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestLoadMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, `
http:
  port: 9090
display:
  show_risk_tier: false
  response_delay: 1s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.True(t, cfg.Display.DeriveTotalCharges)
	assert.False(t, cfg.Display.ShowRiskTier)
	assert.Equal(t, time.Second, cfg.Display.ResponseDelay)
	assert.Equal(t, "models/churn_model.json", cfg.Model.Path)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvModelPath, "/srv/model.json")
	t.Setenv(EnvHTTPPort, "8181")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/srv/model.json", cfg.Model.Path)
	assert.Equal(t, 8181, cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsBadPortEnv(t *testing.T) {
	t.Setenv(EnvHTTPPort, "eighty")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.HTTP.Port = 0
	cfg.Model.Path = ""
	cfg.Display.ResponseDelay = -time.Second
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)
}

func TestValidateRejectsDelayNotShorterThanTimeout(t *testing.T) {
	cfg := Default()
	cfg.HTTP.Timeout = 5 * time.Second
	cfg.Display.ResponseDelay = 5 * time.Second
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "response_delay")

	cfg.Display.ResponseDelay = 4 * time.Second
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsDelayNotShorterThanTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "http:\n  timeout: 2s\ndisplay:\n  response_delay: 3s\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsBadLocale(t *testing.T) {
	cfg := Default()
	cfg.Display.Locale = "not a locale!"
	assert.Error(t, cfg.Validate())
}

func TestDisplayOptions(t *testing.T) {
	opts := DisplayConfig{DeriveTotalCharges: true}.Options()
	assert.True(t, opts.DeriveTotalCharges)
	assert.False(t, opts.ShowRiskTier)
}

func TestWatchAppliesDisplayChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "display:\n  show_risk_tier: true\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	var (
		mu      sync.Mutex
		applied []DisplayConfig
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, cfg, zap.NewNop(), func(d DisplayConfig) {
			mu.Lock()
			applied = append(applied, d)
			mu.Unlock()
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeConfig(t, path, "display:\n  show_risk_tier: false\n")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(applied) > 0 && !applied[len(applied)-1].ShowRiskTier
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatchKeepsDelayBelowRunningTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "http:\n  timeout: 2s\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	var (
		mu      sync.Mutex
		applied []DisplayConfig
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, cfg, zap.NewNop(), func(d DisplayConfig) {
			mu.Lock()
			applied = append(applied, d)
			mu.Unlock()
		})
	}()

	time.Sleep(100 * time.Millisecond)
	// valid on its own, but longer than the timeout the server runs with
	writeConfig(t, path, "http:\n  timeout: 1m\ndisplay:\n  response_delay: 10s\n")
	time.Sleep(300 * time.Millisecond)
	writeConfig(t, path, "http:\n  timeout: 1m\ndisplay:\n  response_delay: 1s\n")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(applied) > 0 && applied[len(applied)-1].ResponseDelay == time.Second
	}, 3*time.Second, 20*time.Millisecond)

	mu.Lock()
	for _, d := range applied {
		assert.Less(t, d.ResponseDelay, 2*time.Second)
	}
	mu.Unlock()

	cancel()
	require.NoError(t, <-done)
}
