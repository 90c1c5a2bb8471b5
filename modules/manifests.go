// Package modules bundles the HCL manifests of the engine modules compiled
// into the binary.
package modules

import (
	"embed"
	"io/fs"
	"path"
)

//go:embed */manifest.hcl
var manifestFS embed.FS

// Manifests returns every embedded module manifest keyed by its path, e.g.
// "polynomial/manifest.hcl".
func Manifests() (map[string][]byte, error) {
	out := make(map[string][]byte)
	err := fs.WalkDir(manifestFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".hcl" {
			return nil
		}
		data, err := manifestFS.ReadFile(p)
		if err != nil {
			return err
		}
		out[p] = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
