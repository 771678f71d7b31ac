package asset

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/profilecard/internal/config"
)

// Module exposes the asset store uploader to fx graph.
var Module = fx.Provide(newUploader)

type uploaderParams struct {
	fx.In

	Ctx      context.Context
	Config   *config.Config
	Logger   *slog.Logger
	Observer UploadObserver `optional:"true"`
}

func newUploader(p uploaderParams) (Uploader, error) {
	uploader, err := NewS3Uploader(p.Ctx, p.Config.Asset, p.Logger)
	if err != nil {
		return nil, err
	}
	if p.Observer == nil {
		return uploader, nil
	}
	return Instrument(uploader, p.Observer), nil
}
