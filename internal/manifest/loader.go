package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/seriesreg/internal/ctxlog"
	"github.com/vk/seriesreg/internal/fsutil"
)

const fileExtension = ".hcl"

// Loader reads HCL manifests into a Model.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every manifest reachable from paths. Directories are walked
// recursively; paths that do not exist are skipped.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "path_count", len(paths))

	files, err := l.findAllManifests(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	parser := hclparse.NewParser()
	model := NewModel()
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		if err := l.merge(ctx, model, hclFile, file); err != nil {
			return nil, err
		}
	}

	logger.Debug("Manifest loading complete.", "series", len(model.Series), "settings", model.Settings != nil)
	return model, nil
}

// LoadSources parses in-memory manifests keyed by file name. Files are
// processed in name order.
func (l *Loader) LoadSources(ctx context.Context, sources map[string][]byte) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started from sources.", "source_count", len(sources))

	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	parser := hclparse.NewParser()
	model := NewModel()
	for _, name := range names {
		hclFile, diags := parser.ParseHCL(sources[name], name)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", name, diags)
		}
		if err := l.merge(ctx, model, hclFile, name); err != nil {
			return nil, err
		}
	}

	logger.Debug("Manifest loading complete.", "series", len(model.Series), "settings", model.Settings != nil)
	return model, nil
}

// Merge folds other into m. Series declared in both, or two settings blocks,
// are conflicts.
func (m *Model) Merge(other *Model) error {
	for kind, def := range other.Series {
		if existing, ok := m.Series[kind]; ok {
			return fmt.Errorf("series %q declared in both %s and %s", kind, existing.Source, def.Source)
		}
		m.Series[kind] = def
	}
	if other.Settings != nil {
		if m.Settings != nil {
			return fmt.Errorf("settings block declared more than once")
		}
		m.Settings = other.Settings
	}
	return nil
}

// merge decodes one parsed file and folds its declarations into model.
func (l *Loader) merge(ctx context.Context, model *Model, hclFile *hcl.File, filename string) error {
	logger := ctxlog.FromContext(ctx)

	var root fileRoot
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	for _, block := range root.Series {
		def, err := translateSeries(block, filename)
		if err != nil {
			return fmt.Errorf("in %s: %w", filename, err)
		}
		if existing, ok := model.Series[def.Kind]; ok {
			return fmt.Errorf("series %q declared in both %s and %s", def.Kind, existing.Source, filename)
		}
		model.Series[def.Kind] = def
		logger.Debug("Loaded series declaration.", "series", def.Kind.String(), "coefficients", len(def.Coefficients), "file", filename)
	}

	for _, block := range root.Settings {
		if model.Settings != nil {
			return fmt.Errorf("in %s: settings block declared more than once", filename)
		}
		overrides, err := translateSettings(block)
		if err != nil {
			return fmt.Errorf("in %s: %w", filename, err)
		}
		model.Settings = overrides
	}
	return nil
}

// findAllManifests walks all given paths and returns a flat, deduplicated
// list of manifest files.
func (l *Loader) findAllManifests(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue // A configured path that doesn't exist is not an error.
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) == fileExtension {
				add(filepath.Clean(path))
			}
			continue
		}

		found, err := fsutil.FindFilesByExtension(path, fileExtension)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(filepath.Clean(f))
		}
	}
	return allFiles, nil
}
