package handlers

import (
	"context"
	"mime/multipart"

	"github.com/polkiloo/profilecard/internal/domain/model"
)

// AccountFacade describes account capabilities required by handlers.
type AccountFacade interface {
	Register(ctx context.Context, reg model.Registration) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
}

// HealthFacade reports whether the user store is reachable.
type HealthFacade interface {
	Ping(ctx context.Context) error
}

// ProfileFacade aggregates the operations used across handlers.
type ProfileFacade interface {
	AccountFacade
	HealthFacade
}

// UploadSpool keeps uploaded files on local disk.
type UploadSpool interface {
	Save(field string, header *multipart.FileHeader) (model.Upload, error)
}
