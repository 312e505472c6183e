package explorer

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound is returned by a Lister for a folder that does not exist.
var ErrNotFound = errors.New("folder not found")

// Item is one raw entry of a folder.
type Item struct {
	Name    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// Lister reads one folder of a storage backend. dir is a cleaned path
// relative to the backend root, "" for the root itself.
type Lister interface {
	List(ctx context.Context, dir string) ([]Item, error)
}

// LocalLister lists folders under a directory on disk. Access is confined
// to the root; symbolic links leading outside it are not followed.
type LocalLister struct {
	root string
}

// NewLocalLister returns a lister rooted at dir.
func NewLocalLister(dir string) *LocalLister {
	return &LocalLister{root: dir}
}

// Root returns the lister's root directory.
func (l *LocalLister) Root() string { return l.root }

// List implements Lister.
func (l *LocalLister) List(ctx context.Context, dir string) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := os.OpenRoot(l.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer root.Close()

	name := "."
	if dir != "" {
		name = filepath.FromSlash(dir)
	}
	f, err := root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, ErrNotFound
	}

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		fi, err := e.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		item := Item{Name: e.Name(), IsDir: e.IsDir(), ModTime: fi.ModTime()}
		if !item.IsDir {
			item.Size = fi.Size()
		}
		items = append(items, item)
	}
	return items, nil
}
