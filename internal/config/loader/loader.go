// Package loader reads configuration files and environment overrides.
//
// Files are decoded strictly: unknown keys are reported as parse errors so
// typos in a widget table surface instead of silently falling back to
// defaults. The format is chosen from the file extension.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for files whose extension is neither
// TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Format identifies a configuration file syntax.
type Format uint8

const (
	// FormatTOML is TOML (.toml).
	FormatTOML Format = iota + 1
	// FormatYAML is YAML (.yaml, .yml).
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFromPath returns the format implied by the path's extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// FileLoader decodes configuration files into typed values.
type FileLoader struct {
	fs FileSystem
}

// NewFileLoader creates a loader reading from the OS file system.
func NewFileLoader() *FileLoader {
	return &FileLoader{fs: DefaultFS()}
}

// NewFileLoaderWithFS creates a loader with a custom file system.
func NewFileLoaderWithFS(fsys FileSystem) *FileLoader {
	return &FileLoader{fs: fsys}
}

// LoadInto decodes the file at path into v.
// A missing file is reported with an error wrapping fs.ErrNotExist.
func (l *FileLoader) LoadInto(path string, v any) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	return Decode(path, data, format, v)
}
