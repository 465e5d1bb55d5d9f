package ingest

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ppiankov/paperverify/internal/cache"
	"github.com/ppiankov/paperverify/internal/model"
)

// Adapter defines the interface for format-specific result loaders.
// Each adapter owns one file-extension category and turns sources of that
// format into a uniform observation stream.
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// Extensions returns the lower-cased file extensions handled (with dot)
	Extensions() []string

	// Load extracts all numeric leaf values from the source
	Load(path string) ([]model.Observation, error)
}

// Registry dispatches result files to adapters by extension
type Registry struct {
	byExt map[string]Adapter
	cache *cache.ObservationCache // nil disables caching
}

// NewRegistry creates a registry with all built-in adapters registered
func NewRegistry(obsCache *cache.ObservationCache) *Registry {
	r := &Registry{
		byExt: make(map[string]Adapter),
		cache: obsCache,
	}

	r.Register(NewJSONAdapter())
	r.Register(NewCSVAdapter())
	r.Register(NewYAMLAdapter())
	r.Register(NewSQLiteAdapter())
	r.Register(NewHTMLAdapter())
	r.Register(NewPDFAdapter())

	return r
}

// Register registers an adapter for all its extensions
func (r *Registry) Register(a Adapter) {
	for _, ext := range a.Extensions() {
		r.byExt[ext] = a
	}
}

// AdapterFor returns the adapter handling the file's extension
func (r *Registry) AdapterFor(path string) (Adapter, bool) {
	a, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return a, ok
}

// LoadDirectory walks dir recursively and ingests every file with a known
// extension. A failing source becomes a diagnostic and is skipped; it never
// aborts the walk, so the run proceeds with a partial corpus. Returns the
// observations in walk order, the diagnostics, and the count of sources
// loaded successfully.
func (r *Registry) LoadDirectory(dir string) ([]model.Observation, []model.Diagnostic, int) {
	var observations []model.Observation
	var diagnostics []model.Diagnostic
	loaded := 0

	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			diagnostics = append(diagnostics, model.Diagnostic{Source: path, Detail: err.Error()})
			return nil
		}
		if d.IsDir() {
			return nil
		}

		adapter, ok := r.AdapterFor(path)
		if !ok {
			return nil
		}

		obs, err := r.loadFile(adapter, path)
		if err != nil {
			diagnostics = append(diagnostics, model.Diagnostic{
				Source: path,
				Detail: fmt.Sprintf("%s: %v", adapter.Name(), err),
			})
			return nil
		}

		observations = append(observations, obs...)
		loaded++
		return nil
	})

	return observations, diagnostics, loaded
}

// loadFile loads one source through its adapter, consulting the cache and
// confining adapter panics to the source being loaded
func (r *Registry) loadFile(adapter Adapter, path string) (obs []model.Observation, err error) {
	if r.cache != nil {
		if cached, ok := r.cache.Get(path); ok {
			return cached, nil
		}
	}

	defer func() {
		if rec := recover(); rec != nil {
			obs = nil
			err = fmt.Errorf("panic loading source: %v", rec)
		}
	}()

	obs, err = adapter.Load(path)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.cache.Set(path, obs)
	}
	return obs, nil
}
