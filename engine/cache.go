package engine

import (
	"fmt"
	"io/fs"
	"reflect"
	"sync"
	"text/template"
)

type cacheKey struct {
	fsID any
	path string
}

// TemplateCache parses each template once per filesystem.
type TemplateCache struct {
	mu        sync.RWMutex
	funcs     template.FuncMap
	templates map[cacheKey]*template.Template
}

func NewTemplateCache(funcs template.FuncMap) *TemplateCache {
	return &TemplateCache{
		funcs:     funcs,
		templates: make(map[cacheKey]*template.Template),
	}
}

func (c *TemplateCache) Get(fsys fs.FS, path string) (*template.Template, error) {
	key := cacheKey{
		fsID: fsIdentity(fsys),
		path: path,
	}

	c.mu.RLock()
	if tmpl, exists := c.templates[key]; exists {
		c.mu.RUnlock()
		return tmpl, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if tmpl, exists := c.templates[key]; exists {
		return tmpl, nil
	}

	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(path).Funcs(c.funcs).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, err
	}

	c.templates[key] = tmpl
	return tmpl, nil
}

func (c *TemplateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.templates)
}

// fsIdentity returns a map key that is stable for one filesystem value and
// distinct between two of them. Reference-typed filesystems (maps, pointers) are
// identified by address; other comparable values by themselves.
func fsIdentity(fsys fs.FS) any {
	v := reflect.ValueOf(fsys)
	switch v.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Func, reflect.Chan, reflect.Slice, reflect.UnsafePointer:
		return fmt.Sprintf("%T@%x", fsys, v.Pointer())
	}
	if v.Comparable() {
		return fsys
	}
	return fmt.Sprintf("%T", fsys)
}
