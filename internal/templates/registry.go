package templates

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Info is one registry listing entry.
type Info struct {
	Name        string
	Description string
}

// Registry holds the available scene templates: the built-in set plus
// any loaded from a template directory. Directory templates shadow
// built-ins with the same name.
type Registry struct {
	log *zap.Logger

	mu        sync.RWMutex
	templates map[string]*Template

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewRegistry returns a registry seeded with the built-in templates.
func NewRegistry(log *zap.Logger) *Registry {
	r := &Registry{
		log:       log,
		templates: make(map[string]*Template, len(builtins)),
	}
	for _, tpl := range builtins {
		r.templates[tpl.Name] = tpl
	}
	return r
}

// Get looks up a template by name. Lookup is case-insensitive and
// treats spaces and hyphens as underscores.
func (r *Registry) Get(name string) (*Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tpl, ok := r.templates[normalizeName(name)]
	return tpl, ok
}

// List returns all templates sorted by name.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]Info, 0, len(r.templates))
	for _, tpl := range r.templates {
		infos = append(infos, Info{Name: tpl.Name, Description: tpl.Description})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// LoadDir loads every .yaml/.yml template file in dir. Files are parsed
// in parallel; one bad file fails the load without touching the
// registry for the others already added.
func (r *Registry) LoadDir(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read template dir: %w", err)
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, entry := range entries {
		if entry.IsDir() || !isTemplateFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		g.Go(func() error {
			return r.loadFile(path)
		})
	}
	return g.Wait()
}

func (r *Registry) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template %s: %w", path, err)
	}
	var tpl Template
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return fmt.Errorf("parse template %s: %w", path, err)
	}
	if tpl.Name == "" {
		tpl.Name = normalizeName(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}
	if err := tpl.Validate(); err != nil {
		return fmt.Errorf("template %s: %w", path, err)
	}

	r.mu.Lock()
	r.templates[normalizeName(tpl.Name)] = &tpl
	r.mu.Unlock()
	r.log.Info("loaded template",
		zap.String("name", tpl.Name),
		zap.Int("objects", len(tpl.Objects)),
		zap.String("path", path))
	return nil
}

// Watch reloads template files as they change in dir. Non-blocking;
// the watch goroutine runs until Stop or ctx cancellation.
func (r *Registry) Watch(ctx context.Context, dir string) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		r.mu.Unlock()
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		r.mu.Unlock()
		return fmt.Errorf("watch template dir: %w", err)
	}
	r.watcher = watcher
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})
	r.running = true
	r.mu.Unlock()

	go r.run(ctx)
	return nil
}

// Stop ends the watch goroutine and waits for it.
func (r *Registry) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	<-r.doneCh
	r.watcher.Close()
}

func (r *Registry) run(ctx context.Context) {
	defer close(r.doneCh)
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if !isTemplateFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if err := r.loadFile(event.Name); err != nil {
				r.log.Warn("template reload failed", zap.Error(err))
			}
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.log.Warn("template watcher error", zap.Error(err))
		}
	}
}

func isTemplateFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func normalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ReplaceAll(name, "-", "_")
}
