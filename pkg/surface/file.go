package surface

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/Sumatoshi-tech/symptomline/pkg/timeline"
)

const (
	outputDirPerm = 0o750
	defaultName   = "trend"
	htmlExt       = ".html"
)

// FileFactory writes each dataset's chart page to Dir/Name.html. The file
// stays open for the lifetime of the resource.
type FileFactory struct {
	Dir  string
	Name string
	// Chart renders the page; nil means a zero ChartFactory. The page it
	// returns is released once written.
	Chart Factory
	// Ephemeral removes the file on Release.
	Ephemeral bool
}

// Path returns the file the factory writes.
func (f FileFactory) Path() string {
	name := f.Name
	if name == "" {
		name = defaultName
	}

	return filepath.Join(f.Dir, name+htmlExt)
}

// Acquire renders ds and writes it to Path.
func (f FileFactory) Acquire(ctx context.Context, ds timeline.Dataset) (res Resource, err error) {
	chart := f.Chart
	if chart == nil {
		chart = ChartFactory{}
	}

	page, err := chart.Acquire(ctx, ds)
	if err != nil {
		return nil, err
	}

	defer func() {
		releaseErr := page.Release()
		if releaseErr == nil {
			return
		}

		err = errors.Join(err, fmt.Errorf("release rendered page: %w", releaseErr))
		if res != nil {
			err = errors.Join(err, res.Release())
			res = nil
		}
	}()

	err = os.MkdirAll(f.Dir, outputDirPerm)
	if err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	path := f.Path()

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	err = page.Render(file)
	if err == nil {
		err = file.Sync()
	}

	if err != nil {
		return nil, errors.Join(fmt.Errorf("write %s: %w", path, err), file.Close(), os.Remove(path))
	}

	return &FileResource{file: file, path: path, ephemeral: f.Ephemeral}, nil
}

// FileResource is a chart page persisted to disk.
type FileResource struct {
	mu        sync.Mutex
	file      *os.File
	path      string
	ephemeral bool
}

// Path returns the written file.
func (r *FileResource) Path() string {
	return r.path
}

// Size returns the size of the written file in bytes.
func (r *FileResource) Size() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return 0, ErrReleased
	}

	info, err := r.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", r.path, err)
	}

	return info.Size(), nil
}

// Render copies the written page to w.
func (r *FileResource) Render(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return ErrReleased
	}

	_, err := r.file.Seek(0, io.SeekStart)
	if err != nil {
		return fmt.Errorf("seek %s: %w", r.path, err)
	}

	_, err = io.Copy(w, r.file)
	if err != nil {
		return fmt.Errorf("copy %s: %w", r.path, err)
	}

	return nil
}

// Release closes the file and removes it when ephemeral.
func (r *FileResource) Release() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return ErrReleased
	}

	err := r.file.Close()
	r.file = nil

	if r.ephemeral {
		err = errors.Join(err, os.Remove(r.path))
	}

	if err != nil {
		return fmt.Errorf("release %s: %w", r.path, err)
	}

	return nil
}
