package asset

import (
	"context"
	"time"

	"github.com/polkiloo/profilecard/internal/domain/model"
)

// UploadObserver receives the latency and result of every upload.
type UploadObserver interface {
	ObserveUpload(latency time.Duration, err error)
}

type instrumentedUploader struct {
	next     Uploader
	observer UploadObserver
	now      func() time.Time
}

// Instrument reports upload timings of next to observer.
func Instrument(next Uploader, observer UploadObserver) Uploader {
	return &instrumentedUploader{next: next, observer: observer, now: time.Now}
}

func (u *instrumentedUploader) Upload(ctx context.Context, upload model.Upload) (*model.Asset, error) {
	start := u.now()
	asset, err := u.next.Upload(ctx, upload)
	u.observer.ObserveUpload(u.now().Sub(start), err)
	return asset, err
}

func (u *instrumentedUploader) Delete(ctx context.Context, publicID string) error {
	return u.next.Delete(ctx, publicID)
}
