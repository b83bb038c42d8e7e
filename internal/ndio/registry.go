// Package ndio loads and saves n-dimensional arrays. Formats register a
// loader per file extension; the set of known extensions mirrors what the
// explorer can open from the command line.
package ndio

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/numex-dev/numex/internal/ndarray"
)

// Loader reads a file into an array.
type Loader func(path string) (*ndarray.NDArray, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Loader)
)

// Register binds a loader to a lowercased extension (without the dot).
// Later registrations replace earlier ones.
func Register(ext string, loader Loader) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(strings.TrimPrefix(ext, "."))] = loader
}

// Lookup returns the loader for an extension, if any.
func Lookup(ext string) (Loader, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	loader, ok := registry[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return loader, ok
}

// Extensions returns the registered extensions, sorted.
func Extensions() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	exts := make([]string, 0, len(registry))
	for ext := range registry {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load dispatches on the file's extension.
func Load(path string) (*ndarray.NDArray, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, fmt.Errorf("cannot determine format of %q: no extension", path)
	}
	loader, ok := Lookup(ext)
	if !ok {
		return nil, fmt.Errorf("no loader for extension %q (known: %s)", ext, strings.Join(Extensions(), ", "))
	}
	arr, err := loader(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return arr, nil
}
