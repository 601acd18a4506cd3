package patternset

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vectorgrep/vectorgrep/pkg/hyperscan"
)

// Loader reads pattern sets from YAML.
type Loader struct {
	fs fs.FS // filesystem for builtin sets
}

// NewLoader creates a loader backed by the embedded builtin sets.
func NewLoader() *Loader {
	return &Loader{fs: builtinFS}
}

// NewLoaderWithFS creates a loader backed by a custom filesystem.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{fs: fsys}
}

// Load parses a pattern set from YAML bytes.
func (l *Loader) Load(data []byte) ([]*Pattern, error) {
	var file yamlPatternsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing pattern set: %w", err)
	}
	if len(file.Patterns) == 0 {
		return nil, fmt.Errorf("no patterns found in pattern set")
	}

	patterns := make([]*Pattern, 0, len(file.Patterns))
	for _, yp := range file.Patterns {
		p, err := convertYAMLPattern(yp)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}

	if err := Validate(patterns); err != nil {
		return nil, err
	}
	return patterns, nil
}

// LoadFile loads a pattern set from a YAML file path.
func (l *Loader) LoadFile(path string) ([]*Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	patterns, err := l.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return patterns, nil
}

// LoadDir loads every .yml file under dir, in walk order.
func (l *Loader) LoadDir(dir string) ([]*Pattern, error) {
	var patterns []*Pattern

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".yml" {
			return nil
		}
		loaded, err := l.LoadFile(path)
		if err != nil {
			return err
		}
		patterns = append(patterns, loaded...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := Validate(patterns); err != nil {
		return nil, err
	}
	return patterns, nil
}

// LoadPath loads a pattern set from a file or from every .yml file
// under a directory.
func (l *Loader) LoadPath(path string) ([]*Pattern, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return l.LoadDir(path)
	}
	return l.LoadFile(path)
}

// LoadBuiltin loads every builtin pattern set.
func (l *Loader) LoadBuiltin() ([]*Pattern, error) {
	var patterns []*Pattern

	err := fs.WalkDir(l.fs, "patterns", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".yml" {
			return nil
		}

		data, err := fs.ReadFile(l.fs, path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		loaded, err := l.Load(data)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		patterns = append(patterns, loaded...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return patterns, nil
}

// convertYAMLPattern converts the YAML form, parsing the flags string.
func convertYAMLPattern(yp yamlPattern) (*Pattern, error) {
	flags, err := hyperscan.ParseCompileFlagNames(yp.Flags)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", yp.ID, err)
	}

	return &Pattern{
		ID:               yp.ID,
		Name:             yp.Name,
		Expression:       yp.Expression,
		Flags:            flags,
		Keywords:         yp.Keywords,
		Examples:         yp.Examples,
		NegativeExamples: yp.NegativeExamples,
	}, nil
}
