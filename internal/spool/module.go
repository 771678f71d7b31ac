package spool

import (
	"go.uber.org/fx"

	"github.com/polkiloo/profilecard/internal/config"
)

// Module provides the upload spool.
var Module = fx.Provide(func(cfg *config.Config) (*Spool, error) {
	return New(cfg.UploadDir)
})
