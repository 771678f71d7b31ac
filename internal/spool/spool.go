package spool

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/polkiloo/profilecard/internal/domain/model"
)

// Spool keeps uploaded files on local disk until they are forwarded to the asset store.
type Spool struct {
	dir string
	now func() time.Time
}

// New creates the spool directory when missing.
func New(dir string) (*Spool, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create spool dir: %w", err)
	}
	return &Spool{dir: dir, now: time.Now}, nil
}

// Dir returns the spool directory.
func (s *Spool) Dir() string {
	return s.dir
}

// Save writes the multipart file as <field>-<unix millis><original extension>.
func (s *Spool) Save(field string, header *multipart.FileHeader) (model.Upload, error) {
	src, err := header.Open()
	if err != nil {
		return model.Upload{}, fmt.Errorf("open multipart file: %w", err)
	}
	defer src.Close()

	name := field + "-" + strconv.FormatInt(s.now().UnixMilli(), 10) + filepath.Ext(header.Filename)
	// O_EXCL keeps two uploads within the same millisecond from sharing a file
	dst, name, err := s.create(name)
	if err != nil {
		return model.Upload{}, err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(name)
		return model.Upload{}, fmt.Errorf("write spooled file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(name)
		return model.Upload{}, fmt.Errorf("close spooled file: %w", err)
	}

	return model.Upload{Field: field, Path: name, OriginalName: header.Filename}, nil
}

func (s *Spool) create(name string) (*os.File, string, error) {
	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]
	candidate := filepath.Join(s.dir, name)
	for i := 1; ; i++ {
		f, err := os.OpenFile(candidate, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("create spooled file: %w", err)
		}
		candidate = filepath.Join(s.dir, base+"-"+strconv.Itoa(i)+ext)
	}
}

// Remove deletes a spooled file, ignoring files that are already gone.
func (s *Spool) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Expired lists spooled files last modified before now minus maxAge.
func (s *Spool) Expired(maxAge time.Duration) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read spool dir: %w", err)
	}
	cutoff := s.now().Add(-maxAge)
	var expired []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// removed concurrently
			continue
		}
		if info.ModTime().Before(cutoff) {
			expired = append(expired, filepath.Join(s.dir, entry.Name()))
		}
	}
	return expired, nil
}
