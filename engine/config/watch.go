package config

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/rendertargets/engine/core"
)

// Editors and os.WriteFile raise several events per save. Reloading waits
// until the file has been quiet for this long.
const reloadDelay = 100 * time.Millisecond

var errEmptyConfig = errors.New("config file is empty")

// Watch reloads the configuration at path every time it is written and hands
// the result to onChange. Bursts of events are coalesced, and empty or
// invalid files are logged and skipped. It blocks until ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory instead.
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	var timer *time.Timer
	var reload <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

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
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			reload = timer.C
		case <-reload:
			reload = nil
			cfg, err := loadChanged(abs)
			if errors.Is(err, errEmptyConfig) {
				core.LogDebug("config %s is empty, waiting for the next write", abs)
				continue
			}
			if err != nil {
				core.LogWarn("ignoring config change: %s", err)
				continue
			}
			core.LogInfo("config %s reloaded", abs)
			onChange(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			core.LogError("config watcher: %s", err)
		}
	}
}

// loadChanged is Load for a file that is being rewritten. A truncated file
// would otherwise parse as the default configuration.
func loadChanged(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptyConfig
	}
	return Parse(data)
}
