// Package spa serves a pre-built single-page application from a static
// root, answering any path that does not name a regular file with the
// entry document so client-side routing survives full page loads.
package spa

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	ErrRootMissing = errors.New("static root not found")
	ErrRootNotDir  = errors.New("static root is not a directory")
)

// Site is a static root opened for serving. All file access goes through
// an os.Root, so nothing outside the directory is reachable, symlinks
// included.
type Site struct {
	dir   string
	index string
	root  *os.Root
	fsys  fs.FS
}

// Open validates dir and opens it for serving with index as the entry
// document.
func Open(dir, index string) (*Site, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrRootMissing, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("checking static root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q", ErrRootNotDir, dir)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("opening static root: %w", err)
	}

	return &Site{
		dir:   dir,
		index: index,
		root:  root,
		fsys:  root.FS(),
	}, nil
}

func (s *Site) Dir() string   { return s.dir }
func (s *Site) Index() string { return s.index }
func (s *Site) FS() fs.FS     { return s.fsys }

func (s *Site) Close() error { return s.root.Close() }

// Check reports whether the entry document is present, so a deleted or
// half-written build shows up on the health endpoint.
func (s *Site) Check(_ context.Context) error {
	info, err := fs.Stat(s.fsys, s.index)
	if err != nil {
		return fmt.Errorf("entry document: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("entry document %q is not a regular file", s.index)
	}
	return nil
}
