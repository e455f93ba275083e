package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churnpredict/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "churn.log")
	cfg := config.Default().Log
	cfg.File = path

	logger, err := New(cfg)
	require.NoError(t, err)
	logger.Info("prediction served")
	_ = logger.Sync()

	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "prediction served")
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "churn.log")
	cfg := config.Default().Log
	cfg.Level = "warn"
	cfg.Format = "console"
	cfg.File = path

	logger, err := New(cfg)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "hidden")
	assert.Contains(t, string(payload), "shown")
}

func TestNewRejectsBadSettings(t *testing.T) {
	cfg := config.Default().Log
	cfg.Level = "loud"
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = config.Default().Log
	cfg.Format = "xml"
	_, err = New(cfg)
	assert.Error(t, err)
}
