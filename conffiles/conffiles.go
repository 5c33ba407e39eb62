// Package conffiles enumerates configuration file fragments across an
// ordered list of search directories.
package conffiles

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Enumerate returns all regular files whose name ends in suffix found
// in dirs.
//
// dirs are ordered from lowest to highest precedence: when several
// directories contain a file with the same name, only the occurrence
// in the directory listed last is returned, the earlier ones are
// dropped entirely (overridden, not merged). The result is sorted by
// file name so the load order is deterministic. Directories that do
// not exist are skipped.
func Enumerate(suffix string, dirs []string) ([]string, error) {
	byName := make(map[string]string)

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}

			return nil, err
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
				continue
			}

			byName[entry.Name()] = filepath.Join(dir, entry.Name())
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}

	sort.Strings(names)

	files := make([]string, len(names))
	for i, name := range names {
		files[i] = byName[name]
	}

	return files, nil
}
