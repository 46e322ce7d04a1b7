package ui

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/litescript/ls-transits/internal/aspect"
)

// OrbsReloadedMsg carries an orb table reloaded from disk.
type OrbsReloadedMsg struct {
	Table *aspect.Table
	Err   error
}

// OrbWatcher reloads an orb table file whenever it changes. It watches the
// file's directory so that editors replacing the file are noticed too.
type OrbWatcher struct {
	Path    string
	Reloads <-chan OrbsReloadedMsg

	reloads chan OrbsReloadedMsg
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewOrbWatcher creates a watcher for the orb table at path.
func NewOrbWatcher(path string) (*OrbWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan OrbsReloadedMsg, 4)
	return &OrbWatcher{
		Path:    abs,
		Reloads: ch,
		reloads: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Start begins watching.
func (w *OrbWatcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Reloads channel.
func (w *OrbWatcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.reloads)
}

func (w *OrbWatcher) loop() {
	defer close(w.done)

	const debounce = 100 * time.Millisecond
	var pending time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.reload()
				}
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= debounce {
				pending = time.Time{}
				w.reload()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next write retries.
		}
	}
}

func (w *OrbWatcher) reload() {
	t, err := aspect.LoadTable(w.Path)
	w.reloads <- OrbsReloadedMsg{Table: t, Err: err}
}

// Forward sends every reload to p until the watcher stops.
func (w *OrbWatcher) Forward(p *tea.Program) {
	for msg := range w.Reloads {
		p.Send(msg)
	}
}
