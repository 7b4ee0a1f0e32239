// pkg/plugin/plugin.go

package plugin

import (
	"io"
	"sort"

	"github.com/pkg/errors"
)

// Transcoder converts a record payload between its archive form and a form
// users can edit, e.g. a length-prefixed string and plain text.
type Transcoder interface {
	Name() string
	// Import turns editable data into archive data.
	Import(in io.Reader, out io.Writer) error
	// Export turns archive data into editable data.
	Export(in io.Reader, out io.Writer) error
}

// Registry maps record type names to transcoders. Types without a binding
// are copied through unchanged.
type Registry struct {
	plugins map[string]Transcoder
	types   map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Transcoder),
		types:   make(map[string]string),
	}
}

// Default returns a registry with the built-in transcoders bound to the
// types they are known to handle.
func Default() *Registry {
	r := NewRegistry()
	txt := r.Register(LengthText{})
	_ = r.Bind("TXT", txt)
	return r
}

// Register adds p and returns the name it is registered under.
func (r *Registry) Register(p Transcoder) string {
	r.plugins[p.Name()] = p
	return p.Name()
}

// Bind routes records of typeName through the plugin named plugin.
func (r *Registry) Bind(typeName, plugin string) error {
	if _, ok := r.plugins[plugin]; !ok {
		return errors.Errorf("unknown plugin %q for type %q", plugin, typeName)
	}
	r.types[typeName] = plugin
	return nil
}

// Lookup returns the transcoder bound to typeName.
func (r *Registry) Lookup(typeName string) (Transcoder, bool) {
	name, ok := r.types[typeName]
	if !ok {
		return nil, false
	}
	p, ok := r.plugins[name]
	return p, ok
}

// Types returns the bound type names in order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.types))
	for t := range r.types {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Import converts editable data of typeName into archive data.
func (r *Registry) Import(typeName string, in io.Reader, out io.Writer) error {
	if p, ok := r.Lookup(typeName); ok {
		return errors.WithMessagef(p.Import(in, out), "import %s with %s", typeName, p.Name())
	}
	_, err := io.Copy(out, in)
	return err
}

// Export converts archive data of typeName into editable data.
func (r *Registry) Export(typeName string, in io.Reader, out io.Writer) error {
	if p, ok := r.Lookup(typeName); ok {
		return errors.WithMessagef(p.Export(in, out), "export %s with %s", typeName, p.Name())
	}
	_, err := io.Copy(out, in)
	return err
}
