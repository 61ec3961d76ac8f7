package dataview

import (
	"fmt"
	"sort"
	"sync"
)

// TableHook lets packages register tables/sources during init().
type TableHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []TableHook
)

// RegisterTableHook registers a hook executed against new registries.
func RegisterTableHook(h TableHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry implements TableRegistry with hook + manifest support.
type Registry struct {
	mu      sync.RWMutex
	tables  map[string]TableDefinition
	sources map[string]RecordSource
}

// NewRegistry builds a registry holding the default admin tables and applies
// global hooks.
func NewRegistry() *Registry {
	reg := NewEmptyRegistry()
	reg.registerDefaults()
	_ = reg.ApplyHooks()
	return reg
}

// NewEmptyRegistry builds a registry without defaults or hooks.
func NewEmptyRegistry() *Registry {
	return &Registry{
		tables:  map[string]TableDefinition{},
		sources: map[string]RecordSource{},
	}
}

func (r *Registry) registerDefaults() {
	for _, def := range DefaultTableDefinitions() {
		_ = r.RegisterTable(def)
		if source, ok := defaultSources[def.Code]; ok {
			_ = r.RegisterSource(def.Code, source)
		}
	}
}

// ApplyHooks executes registered table hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterTable stores a copy of def with column, key and status names
// normalized the same way incoming rows are.
func (r *Registry) RegisterTable(def TableDefinition) error {
	def = normalizeDefinition(def.Clone())
	if def.Code == "" {
		return fmt.Errorf("dataview: table code is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[def.Code] = def
	return nil
}

// RegisterSource associates a record source with a table.
func (r *Registry) RegisterSource(code string, source RecordSource) error {
	if code == "" {
		return fmt.Errorf("dataview: table code is required to register source")
	}
	if source == nil {
		return fmt.Errorf("dataview: source cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[code]; !ok {
		return fmt.Errorf("dataview: table %s not found", code)
	}
	r.sources[code] = source
	return nil
}

// Table fetches a table definition by code.
func (r *Registry) Table(code string) (TableDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.tables[code]
	return def.Clone(), ok
}

// Source fetches the record source of a table.
func (r *Registry) Source(code string) (RecordSource, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	source, ok := r.sources[code]
	return source, ok
}

// Tables returns all registered definitions sorted by code.
func (r *Registry) Tables() []TableDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]TableDefinition, 0, len(r.tables))
	for _, def := range r.tables {
		defs = append(defs, def.Clone())
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Code < defs[j].Code })
	return defs
}
