package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/genomeprep/internal/ctxlog"
	"github.com/vk/genomeprep/internal/fsutil"
)

// Load reads configuration from path using whichever loader claims the file's
// extension. When path is a directory every supported file below it is
// loaded in sorted order and merged; a name defined by two files is an error.
func Load(ctx context.Context, path string, loaders ...Loader) (Values, error) {
	logger := ctxlog.FromContext(ctx)

	byExt := make(map[string]Loader)
	var exts []string
	for _, l := range loaders {
		for _, ext := range l.Extensions() {
			ext = strings.ToLower(ext)
			if _, dup := byExt[ext]; dup {
				return nil, fmt.Errorf("extension %s claimed by more than one loader", ext)
			}
			byExt[ext] = l
			exts = append(exts, ext)
		}
	}
	if len(exts) == 0 {
		return nil, fmt.Errorf("no configuration loaders available")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing config path %s: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = fsutil.FindFilesByExtension(path, exts...)
		if err != nil {
			return nil, fmt.Errorf("walking config directory %s: %w", path, err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no configuration files (%s) found in %s", strings.Join(exts, ", "), path)
		}
	}
	logger.Debug("Discovered configuration files.", "count", len(files), "files", files)

	merged := make(Values)
	origin := make(map[string]string)
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file))
		loader, ok := byExt[ext]
		if !ok {
			return nil, fmt.Errorf("unsupported config file extension %q for %s", ext, file)
		}

		vals, err := loader.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		for _, name := range vals.Names() {
			val := vals[name]
			if err := ValidateScalar(name, val); err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			if prev, dup := origin[name]; dup {
				return nil, fmt.Errorf("config value %q defined in both %s and %s", name, prev, file)
			}
			origin[name] = file
			merged[name] = val
		}
		logger.Debug("Configuration file loaded.", "file", file, "values", len(vals))
	}

	logger.Info("Configuration loaded.", "values", merged.Names())
	return merged, nil
}
