package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const projectFileExt = ".json"

// FileProjectStore keeps each project as <dir>/<code>.json. Name and Kind
// are not recorded on disk; callers derive them from the body.
type FileProjectStore struct {
	dir string
}

func NewFileProjectStore(dir string) *FileProjectStore {
	return &FileProjectStore{dir: dir}
}

func (s *FileProjectStore) Dir() string { return s.dir }

func (s *FileProjectStore) path(code string) string {
	return filepath.Join(s.dir, code+projectFileExt)
}

func (s *FileProjectStore) Get(ctx context.Context, code string) (*ProjectRecord, error) {
	if err := checkCode(code); err != nil {
		return nil, err
	}
	path := s.path(code)
	body, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("project %s: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("reading project %s: %w", code, err)
	}
	rec := &ProjectRecord{Code: code, Body: body, Source: path}
	if info, err := os.Stat(path); err == nil {
		rec.UpdatedAt = info.ModTime().UTC()
		rec.CreatedAt = rec.UpdatedAt
	}
	return rec, nil
}

// Put writes the body to a temporary file and renames it into place, so
// readers never observe a partial file.
func (s *FileProjectStore) Put(ctx context.Context, rec *ProjectRecord) error {
	if !ValidCode(rec.Code) {
		return fmt.Errorf("invalid project code %q", rec.Code)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating library directory: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, "."+rec.Code+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(rec.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("writing project %s: %w", rec.Code, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing project %s: %w", rec.Code, err)
	}
	if err := os.Rename(tmp.Name(), s.path(rec.Code)); err != nil {
		return fmt.Errorf("storing project %s: %w", rec.Code, err)
	}
	return nil
}

func (s *FileProjectStore) List(ctx context.Context) ([]*ProjectRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing library: %w", err)
	}
	var out []*ProjectRecord
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, projectFileExt) {
			continue
		}
		code := strings.TrimSuffix(name, projectFileExt)
		if !ValidCode(code) {
			continue
		}
		rec := &ProjectRecord{Code: code, Source: filepath.Join(s.dir, name)}
		if info, err := e.Info(); err == nil {
			rec.UpdatedAt = info.ModTime().UTC()
			rec.CreatedAt = rec.UpdatedAt
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *FileProjectStore) Delete(ctx context.Context, code string) error {
	if err := checkCode(code); err != nil {
		return err
	}
	if err := os.Remove(s.path(code)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("project %s: %w", code, ErrNotFound)
		}
		return fmt.Errorf("deleting project %s: %w", code, err)
	}
	return nil
}
