// Package extension loads user symbol extensions from a directory.
//
// Every supported file in the directory becomes one Extension, named after
// the file. Supported formats:
//
//	*.json, *.yaml, *.yml  flat word→code map, or a manifest with a symbols list
//	*.md                   fenced blocks headed "Code Word"
//	*.star                 Starlark: a global symbols dict and an optional
//	                       transform(source) function
//
// Files with other extensions are ignored.
package extension

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/gaia/pkg/compiler"
	"github.com/leapstack-labs/gaia/pkg/symbols"
)

// Format identifies how an extension file was parsed.
type Format string

// Supported formats.
const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatStarlark Format = "starlark"
)

var formatsByExt = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".md":   FormatMarkdown,
	".star": FormatStarlark,
}

// PassPrefix prefixes the pipeline name of a Starlark transform.
const PassPrefix = "ext:"

// Extension is one loaded extension file.
type Extension struct {
	// Name is the file name without its extension, or the manifest name.
	Name        string
	Description string
	Path        string
	Format      Format

	// Entries map a code (Symbol) to the word it stands for (Meaning).
	Entries []symbols.Entry

	// Transform is set when a Starlark extension defines transform().
	Transform compiler.Pass
}

// Loader scans a directory for extension files.
type Loader struct {
	dir    string
	logger *slog.Logger
}

// NewLoader creates a loader for dir.
func NewLoader(dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{dir: dir, logger: logger}
}

// Load reads every supported file in the directory, in file name order.
// A missing directory yields no extensions and no error.
func (l *Loader) Load() ([]*Extension, error) {
	info, err := os.Stat(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to access extensions directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("extensions path is not a directory: %s", l.dir)
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan extensions directory: %w", err)
	}

	var exts []*Extension
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		format, ok := formatsByExt[strings.ToLower(filepath.Ext(entry.Name()))]
		if !ok {
			continue
		}

		ext, err := l.loadFile(filepath.Join(l.dir, entry.Name()), format)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("extension loaded",
			"file", entry.Name(),
			"format", string(format),
			"entries", len(ext.Entries),
			"transform", ext.Transform != nil)
		exts = append(exts, ext)
	}

	return exts, nil
}

func (l *Loader) loadFile(path string, format Format) (*Extension, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: path comes from ReadDir within the extensions directory
	if err != nil {
		return nil, &LoadError{File: path, Message: fmt.Sprintf("failed to read file: %v", err)}
	}

	base := filepath.Base(path)
	ext := &Extension{
		Name:   strings.TrimSuffix(base, filepath.Ext(base)),
		Path:   path,
		Format: format,
	}

	switch format {
	case FormatJSON, FormatYAML:
		err = decodeMapFile(ext, content, format)
	case FormatMarkdown:
		ext.Entries = parseMarkdown(string(content))
	case FormatStarlark:
		err = l.execStarlark(ext, content)
	}
	if err != nil {
		return nil, &LoadError{File: path, Message: err.Error()}
	}

	for i := range ext.Entries {
		if ext.Entries[i].Category == "" {
			ext.Entries[i].Category = ext.Name
		}
	}
	return ext, nil
}

// LoadError represents an error loading an extension file.
type LoadError struct {
	File    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("extensions/%s: %s", filepath.Base(e.File), e.Message)
}

// Entries merges the entries of every extension. A later code replaces an
// earlier one in place.
func Entries(exts []*Extension) []symbols.Entry {
	merged := symbols.Table{}
	for _, ext := range exts {
		merged = merged.With(ext.Entries)
	}
	return merged.Entries
}

// Table returns the merged entries as a table named "extensions".
func Table(exts []*Extension) symbols.Table {
	return symbols.Table{
		Name:        "extensions",
		Description: "Symbols loaded from the extensions directory",
		Entries:     Entries(exts),
	}
}

// Passes returns the transform passes of every extension, in load order.
func Passes(exts []*Extension) []compiler.Pass {
	var passes []compiler.Pass
	for _, ext := range exts {
		if ext.Transform != nil {
			passes = append(passes, ext.Transform)
		}
	}
	return passes
}
