package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the file at path whenever it changes and hands the display
// section to apply. Other sections need a restart; changes to them are only
// logged. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, current *Config, logger *zap.Logger, apply func(DisplayConfig)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors replace files by rename, so watch the directory.
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	last := *current
	// the server keeps the timeout it started with
	timeout := current.HTTP.Timeout
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			next, err := Load(path)
			if err != nil {
				logger.Warn("config reload rejected, keeping previous settings", zap.String("path", path), zap.Error(err))
				continue
			}
			if next.Model.Path != last.Model.Path || next.HTTP.Port != last.HTTP.Port {
				logger.Warn("model path and http port changes take effect after restart",
					zap.String("model_path", next.Model.Path),
					zap.Int("port", next.HTTP.Port))
			}
			if next.Display.ResponseDelay >= timeout {
				logger.Warn("config reload rejected, response_delay must be shorter than the running http.timeout",
					zap.Duration("response_delay", next.Display.ResponseDelay),
					zap.Duration("timeout", timeout))
				continue
			}
			if next.Display != last.Display {
				logger.Info("display settings reloaded",
					zap.Bool("derive_total_charges", next.Display.DeriveTotalCharges),
					zap.Bool("show_risk_tier", next.Display.ShowRiskTier),
					zap.Duration("response_delay", next.Display.ResponseDelay),
					zap.String("locale", next.Display.Locale))
				apply(next.Display)
			}
			last = *next
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("config watcher error", zap.Error(err))
		}
	}
}
