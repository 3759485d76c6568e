package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/aymerick/raymond"
)

// Renderer produces the output text for a variable map.
type Renderer interface {
	Render(vars map[string]interface{}) (string, error)
}

// handlebarsTemplate renders a Handlebars template file. The compiled
// template is cached; Reload re-reads the file after the template watcher
// saw it change on disk.
type handlebarsTemplate struct {
	path string

	mutex sync.Mutex
	tpl   *raymond.Template
}

func loadTemplate(path string) (*handlebarsTemplate, error) {
	t := &handlebarsTemplate{path: path}
	if err := t.Reload(); err != nil {
		return nil, err
	}

	return t, nil
}

// Reload re-reads and recompiles the template file.
func (t *handlebarsTemplate) Reload() error {
	src, err := os.ReadFile(t.path)
	if err != nil {
		return fmt.Errorf("could not read template %s: %w", t.path, err)
	}

	tpl, err := raymond.Parse(string(src))
	if err != nil {
		return fmt.Errorf("could not parse template %s: %w", t.path, err)
	}

	t.mutex.Lock()
	t.tpl = tpl
	t.mutex.Unlock()

	return nil
}

func (t *handlebarsTemplate) Render(vars map[string]interface{}) (string, error) {
	t.mutex.Lock()
	tpl := t.tpl
	t.mutex.Unlock()

	out, err := tpl.Exec(vars)
	if err != nil {
		return "", fmt.Errorf("could not render template %s: %w", t.path, err)
	}

	return out, nil
}
