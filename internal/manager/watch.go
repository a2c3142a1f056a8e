/*
Copyright © 2026 the LSI authors.
This file is part of the Linked Spatial Index.

The Linked Spatial Index is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

The Linked Spatial Index is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with the Linked Spatial Index.  If not, see <http://www.gnu.org/licenses/>.
*/

package manager

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// watcher watches the data directory for .idx manifests dropped in
// after startup (an index provisioned out-of-band, by another process
// writing directly into the directory) and opens them automatically.
// afero has no directory-watching primitive, so this only runs against
// a real OS directory: startWatching is a no-op for any other afero
// filesystem (such as the MemMapFs used in tests), and a watcher that
// cannot be created or attached is logged and skipped.
type watcher struct {
	fsw *fsnotify.Watcher
}

func (m *Manager) startWatching(ctx context.Context) error {
	if m.fs.Name() != "OsFs" {
		// In-memory filesystems (used in tests) have no real directory to
		// watch; callers provision new indexes explicitly instead.
		return nil
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		m.log.WithError(err).Warn("directory watcher unavailable, new indexes must be provisioned explicitly")
		return nil
	}
	if err := fsw.Add(m.dir); err != nil {
		m.log.WithError(err).WithField("dir", m.dir).Warn("failed to watch data directory")
		fsw.Close()
		return nil
	}

	m.watcher = &watcher{fsw: fsw}
	go m.watchLoop(ctx, fsw)
	return nil
}

func (m *Manager) watchLoop(ctx context.Context, fsw *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if filepath.Ext(event.Name) != ".idx" {
				continue
			}
			name := strings.TrimSuffix(filepath.Base(event.Name), ".idx")
			if _, already := m.Search(name); already {
				continue
			}
			if err := m.Provision(name); err != nil {
				m.log.WithError(err).WithField("index", name).Warn("failed to provision index discovered by directory watcher")
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			m.log.WithError(err).Warn("directory watcher error")
		}
	}
}

func (w *watcher) close() {
	if w == nil {
		return
	}
	w.fsw.Close()
}
