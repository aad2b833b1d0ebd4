package starlark

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	starlarkLib "go.starlark.net/starlark"
)

const starExt = ".star"

type libraryModule struct {
	globals starlarkLib.StringDict
	err     error
}

// loadLibraries executes every .star file in dir and merges the exported
// globals into the universe. Files run in name order; load() between them
// resolves within dir, memoized, with cycle detection. Names starting with
// an underscore stay private to their file. Any failure aborts Runtime
// construction.
func (rt *Runtime) loadLibraries(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLibraryLoad, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), starExt) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	if len(files) == 0 {
		rt.logger.Debug("library directory holds no starlark files", "dir", dir)
		return nil
	}

	cache := make(map[string]*libraryModule)
	load := rt.libraryLoader(dir, cache)
	for _, name := range files {
		globals, err := load(nil, name)
		if err != nil {
			return err
		}
		merged := 0
		for key, value := range globals {
			if strings.HasPrefix(key, "_") {
				continue
			}
			if _, exists := rt.universe[key]; exists {
				rt.logger.Warn("library global shadows an earlier definition",
					"name", key, "module", name)
			}
			rt.universe[key] = value
			merged++
		}
		rt.logger.Debug("library module loaded", "module", name, "globals", merged)
	}
	return nil
}

// libraryLoader builds the load() implementation used while preloading.
// Module names are confined to dir; each file executes at most once.
func (rt *Runtime) libraryLoader(
	dir string,
	cache map[string]*libraryModule,
) func(*starlarkLib.Thread, string) (starlarkLib.StringDict, error) {
	var load func(*starlarkLib.Thread, string) (starlarkLib.StringDict, error)
	load = func(_ *starlarkLib.Thread, module string) (starlarkLib.StringDict, error) {
		entry, seen := cache[module]
		if entry != nil {
			return entry.globals, entry.err
		}
		if seen {
			return nil, fmt.Errorf("%w: load cycle through %q", ErrLibraryLoad, module)
		}
		cache[module] = nil

		src, err := os.ReadFile(filepath.Join(dir, filepath.Base(module)))
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrLibraryLoad, err)
			cache[module] = &libraryModule{err: err}
			return nil, err
		}

		thread := &starlarkLib.Thread{Name: "library:" + module, Load: load}
		globals, err := starlarkLib.ExecFileOptions(fileOptions(), thread, module, src, rt.universe)
		if err != nil {
			err = fmt.Errorf("%w: %s: %s", ErrLibraryLoad, module, failureMessage(err))
			cache[module] = &libraryModule{err: err}
			return nil, err
		}
		globals.Freeze()

		entry = &libraryModule{globals: globals}
		cache[module] = entry
		return globals, nil
	}
	return load
}
