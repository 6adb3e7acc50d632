package importer

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ── Source ──────────────────────────────────────────────────
// A Source extracts raw tables from one file format. Implementations
// live in importer/sources/, one file per format, registered from
// init().

// UnreadableSourceError reports a file that could not be parsed. The
// underlying parse failure is wrapped, never guessed around.
type UnreadableSourceError struct {
	Path string
	Err  error
}

func (e *UnreadableSourceError) Error() string {
	return fmt.Sprintf("unreadable source %q: %v", e.Path, e.Err)
}

func (e *UnreadableSourceError) Unwrap() error { return e.Err }

// SourceSpec describes a source type: its label and the file
// extensions it claims.
type SourceSpec struct {
	Type       string   `json:"type"`
	Label      string   `json:"label"`
	Extensions []string `json:"extensions"` // with dots, e.g. ".csv"
}

// Source parses one file format into raw tables.
type Source interface {
	// Spec returns metadata about this source type.
	Spec() SourceSpec

	// Parse reads the file into one or more named tables.
	Parse(path string) ([]Table, error)
}

// ── Source registry ─────────────────────────────────────────
// Compile-time registration via init() in each source file.

var (
	registryMu sync.RWMutex
	registry   = map[string]Source{} // extension → source
)

// RegisterSource registers a source under every extension it claims.
func RegisterSource(s Source) {
	registryMu.Lock()
	defer registryMu.Unlock()
	for _, ext := range s.Spec().Extensions {
		registry[strings.ToLower(ext)] = s
	}
}

// SourceFor picks the source for a file path by extension.
func SourceFor(path string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(path))
	registryMu.RLock()
	defer registryMu.RUnlock()
	s, ok := registry[ext]
	if !ok {
		return nil, &UnreadableSourceError{
			Path: path,
			Err:  fmt.Errorf("unsupported file type %q, supported: %s", ext, strings.Join(supportedLocked(), ", ")),
		}
	}
	return s, nil
}

// SupportedExtensions returns the registered extensions, sorted.
func SupportedExtensions() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return supportedLocked()
}

func supportedLocked() []string {
	exts := make([]string, 0, len(registry))
	for ext := range registry {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
