// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultSettleDelay = 500 * time.Millisecond

// WithSettleDelay sets how long Watch waits after the last write to a file
// before processing it.
func WithSettleDelay(d time.Duration) Option {
	return func(p *Pipeline) { p.settle = d }
}

// Watch processes .txt files created or written in dir until ctx is
// cancelled. Files are processed one at a time once writes to them have
// settled. A file that fails is logged and watching continues.
func (p *Pipeline) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	log := p.log.With("dir", dir)
	log.Info("watching for contracts")

	pending := make(map[string]struct{})
	var settle <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isContractFile(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			settle = time.After(p.settle)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "error", err)

		case <-settle:
			settle = nil
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			clear(pending)
			sort.Strings(paths)

			for _, path := range paths {
				if info, err := os.Stat(path); err != nil || info.IsDir() {
					continue
				}
				if _, err := p.ProcessFile(ctx, path); err != nil {
					fmt.Fprintf(p.out, "failed  %s: %v\n", path, err)
					log.Error("file failed", "file", path, "error", err)
				}
			}
		}
	}
}
