// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scaling

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/rawbby/kaspan-bench/pkg/result"
	log "github.com/sirupsen/logrus"
)

// Watcher triggers a full reload when result files below a directory are created or written.
// Only names ParseFileName accepts count as result files.
// Bursts of events within the debounce interval cause a single reload.
type Watcher struct {
	dir      string
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// NewWatcher watches dir and all of its subdirectories.
func NewWatcher(dir string, debounce time.Duration) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "cannot create file watcher")
	}

	w := &Watcher{dir: dir, debounce: debounce, watcher: watcher}
	if err := w.addRecursive(dir); err != nil {
		watcher.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return errors.Wrapf(w.watcher.Add(path), "cannot watch %q", path)
	})
}

// Run calls reload after changes until ctx is done. The watcher is closed on return.
func (w *Watcher) Run(ctx context.Context, reload func()) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				// Files may have been written before the directory was watched.
				if err := w.addRecursive(event.Name); err != nil {
					log.Warnf("Cannot watch new directory: %s", err)
				}
			} else if _, ok := result.ParseFileName(filepath.Base(event.Name)); !ok {
				// Exports and notes next to the results must not trigger a reload.
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			log.Debugf("Reloading results below %q", w.dir)
			reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("File watcher error: %s", err)
		}
	}
}

// Watch reloads on changes below dir until ctx is done.
func Watch(ctx context.Context, dir string, debounce time.Duration, reload func()) error {
	w, err := NewWatcher(dir, debounce)
	if err != nil {
		return err
	}
	return w.Run(ctx, reload)
}
