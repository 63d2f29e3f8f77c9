// Package site resolves the game's on-disk assets: the root HTML document
// and the static directory mounted under /static/.
package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/momentum/tetris-vault-toast/internal/domain"
)

// Site is read-only and safe for concurrent use. Nothing is cached: every
// call goes back to disk so asset edits show up on the next request.
type Site struct {
	root      string
	indexFile string
}

// New validates the static directory and index file once at startup.
// Failures wrap domain.ErrStartup.
func New(staticDir, indexFile string) (*Site, error) {
	abs, err := filepath.Abs(staticDir)
	if err != nil {
		return nil, fmt.Errorf("%w: static dir %q: %v", domain.ErrStartup, staticDir, err)
	}
	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: static dir %q: %v", domain.ErrStartup, staticDir, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: static dir %q: %v", domain.ErrStartup, staticDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: static dir %q is not a directory", domain.ErrStartup, staticDir)
	}

	info, err = os.Stat(indexFile)
	if err != nil {
		return nil, fmt.Errorf("%w: index file %q: %v", domain.ErrStartup, indexFile, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: index file %q is not a regular file", domain.ErrStartup, indexFile)
	}

	return &Site{root: root, indexFile: indexFile}, nil
}

// Root returns the resolved absolute static directory.
func (s *Site) Root() string { return s.root }

// ReadIndex reads the root document from disk.
func (s *Site) ReadIndex() ([]byte, error) {
	b, err := os.ReadFile(s.indexFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidEncoding, s.indexFile)
	}
	return b, nil
}

// Open resolves a slash-separated name relative to the static directory.
// Missing files, directories, and anything resolving outside the directory
// (via ".." or symlinks) report domain.ErrNotFound. The caller closes the file.
func (s *Site) Open(name string) (*os.File, fs.FileInfo, error) {
	full, err := s.resolve(name)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		return nil, nil, notFound(name, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, notFound(name, err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, fmt.Errorf("%w: %s is not a file", domain.ErrNotFound, name)
	}
	return f, info, nil
}

func (s *Site) resolve(name string) (string, error) {
	if strings.ContainsRune(name, 0) || strings.Contains(name, "\\") {
		return "", fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}

	clean := path.Clean("/" + name)
	full := filepath.Join(s.root, filepath.FromSlash(clean))

	real, err := filepath.EvalSymlinks(full)
	if err != nil {
		return "", notFound(name, err)
	}
	if real != s.root && !strings.HasPrefix(real, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s escapes static dir", domain.ErrNotFound, name)
	}
	return real, nil
}

func notFound(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrNotFound, name, err)
}
