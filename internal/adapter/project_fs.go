// Package adapter contains filesystem, process and persistence adapters for
// the signing pipeline.
package adapter

import (
	"os"
	"path/filepath"

	m "github.com/flutsign/flutsign/internal/model"
)

// ProjectFS abstracts the filesystem operations the domain layer relies on
// when working inside a user project. It hides direct `os` access so the
// pipeline logic can be tested without touching the disk.
type ProjectFS interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// FileExists reports whether path exists and is a regular file.
	FileExists(path m.Path) bool

	// DirExists reports whether path exists and is a directory.
	DirExists(path m.Path) bool

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path m.Path, perm os.FileMode) error

	// Remove deletes a single file.
	Remove(path m.Path) error

	// Chmod changes the mode of the file at path.
	Chmod(path m.Path, mode os.FileMode) error

	// ListDir returns the names of the entries in a directory.
	ListDir(path m.Path) ([]string, error)

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalProjectFS is the os-backed ProjectFS implementation.
type LocalProjectFS struct{}

// NewLocalProjectFS constructs a LocalProjectFS ready to be wired into the
// workflow.
func NewLocalProjectFS() *LocalProjectFS {
	return &LocalProjectFS{}
}

// ReadFile loads file contents from disk.
func (a *LocalProjectFS) ReadFile(path m.Path) ([]byte, error) {
	// #nosec G304 - path is resolved inside the user's own project
	return os.ReadFile(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalProjectFS) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// FileExists reports whether path exists and is a regular file.
func (a *LocalProjectFS) FileExists(path m.Path) bool {
	info, err := os.Stat(string(path))
	return err == nil && info.Mode().IsRegular()
}

// DirExists reports whether path exists and is a directory.
func (a *LocalProjectFS) DirExists(path m.Path) bool {
	info, err := os.Stat(string(path))
	return err == nil && info.IsDir()
}

// MkdirAll creates a directory and any missing parents.
func (a *LocalProjectFS) MkdirAll(path m.Path, perm os.FileMode) error {
	return os.MkdirAll(string(path), perm)
}

// Remove deletes a single file.
func (a *LocalProjectFS) Remove(path m.Path) error {
	return os.Remove(string(path))
}

// Chmod changes the mode of the file at path.
func (a *LocalProjectFS) Chmod(path m.Path, mode os.FileMode) error {
	return os.Chmod(string(path), mode)
}

// ListDir returns the names of the entries in a directory.
func (a *LocalProjectFS) ListDir(path m.Path) ([]string, error) {
	entries, err := os.ReadDir(string(path))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names, nil
}

// RelPath returns the relative path from base to target.
func (a *LocalProjectFS) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalProjectFS) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
