// Package migrations embebe los scripts SQL del esquema.
package migrations

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed *.sql
var files embed.FS

// FS devuelve el sistema de archivos con los scripts.
func FS() fs.FS { return files }

// Names devuelve los scripts ordenados por nombre (001_, 002_, ...).
func Names() ([]string, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
