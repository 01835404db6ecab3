// Package render turns (template name, context data) pairs into HTML
// responses. Templates are embedded in the binary; a development mode parses
// them from disk instead and re-parses on change.
package render

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/tilhq/til-in-go/web"
)

// Renderer is the templating boundary: a function from (template name,
// fully-resolved context data) to rendered bytes.
type Renderer interface {
	Render(w io.Writer, name string, data interface{}) error
}

// HTML renders html/template pages. Safe for concurrent use; the template
// set is swapped atomically on reload.
type HTML struct {
	mu        sync.RWMutex
	templates *template.Template
	dir       string
	watcher   *fsnotify.Watcher
}

// NewHTML parses the embedded template set.
func NewHTML() (*HTML, error) {
	templates, err := parseFS(web.FS)
	if err != nil {
		return nil, err
	}
	return &HTML{templates: templates}, nil
}

// NewHTMLFromDir parses templates from an on-disk directory and watches it
// for changes, re-parsing on every write. Used in development.
func NewHTMLFromDir(dir string) (*HTML, error) {
	templates, err := parseDir(dir)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	h := &HTML{templates: templates, dir: dir, watcher: watcher}
	go h.watch()
	return h, nil
}

// Render executes the named template against data.
func (h *HTML) Render(w io.Writer, name string, data interface{}) error {
	h.mu.RLock()
	templates := h.templates
	h.mu.RUnlock()

	tmpl := templates.Lookup(name)
	if tmpl == nil {
		return fmt.Errorf("template not found: %s", name)
	}
	return tmpl.Execute(w, data)
}

// Close stops the change watcher, if any.
func (h *HTML) Close() error {
	if h.watcher != nil {
		return h.watcher.Close()
	}
	return nil
}

func (h *HTML) watch() {
	for {
		select {
		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			templates, err := parseDir(h.dir)
			if err != nil {
				// Keep serving the previous set on a parse error.
				log.Printf("template reload failed: %v", err)
				continue
			}
			h.mu.Lock()
			h.templates = templates
			h.mu.Unlock()
		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("template watcher error: %v", err)
		}
	}
}

func parseFS(fsys fs.FS) (*template.Template, error) {
	return template.New("").ParseFS(fsys, "templates/*.html")
}

func parseDir(dir string) (*template.Template, error) {
	return template.New("").ParseGlob(filepath.Join(dir, "*.html"))
}
