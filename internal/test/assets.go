package test

import (
	"context"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/polkiloo/profilecard/internal/domain/model"
)

// UploaderStub records uploads and deletions against a fake asset store.
type UploaderStub struct {
	mu sync.Mutex

	UploadFn  func(context.Context, model.Upload) (*model.Asset, error)
	DeleteErr error
	BaseURL   string

	Uploads []model.Upload
	Deleted []string
}

// Upload returns an asset under BaseURL named after the upload sequence.
func (s *UploaderStub) Upload(ctx context.Context, upload model.Upload) (*model.Asset, error) {
	s.mu.Lock()
	s.Uploads = append(s.Uploads, upload)
	n := len(s.Uploads)
	s.mu.Unlock()
	if s.UploadFn != nil {
		return s.UploadFn(ctx, upload)
	}
	base := s.BaseURL
	if base == "" {
		base = "https://cdn.example.com"
	}
	publicID := "profiles/" + strconv.Itoa(n) + filepath.Ext(upload.OriginalName)
	return &model.Asset{PublicID: publicID, SecureURL: base + "/" + publicID}, nil
}

// Delete records the removed public id.
func (s *UploaderStub) Delete(ctx context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deleted = append(s.Deleted, publicID)
	return s.DeleteErr
}

// UploadCount returns the number of Upload calls.
func (s *UploaderStub) UploadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Uploads)
}
