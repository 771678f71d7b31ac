package test

import (
	"context"
	"errors"

	"github.com/polkiloo/profilecard/internal/domain/model"
	pkgAuth "github.com/polkiloo/profilecard/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// AccountFacadeStub simulates the account facade used by HTTP handlers.
type AccountFacadeStub struct {
	RegisterFn func(context.Context, model.Registration) (*model.User, error)
	LoginFn    func(context.Context, string, string) (*model.User, error)
	PingFn     func(context.Context) error
}

// Register returns an account built from the registration by default.
func (s AccountFacadeStub) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, reg)
	}
	return &model.User{ID: "1", Name: reg.Name, Email: reg.Email}, nil
}

// Login returns a fixed account by default.
func (s AccountFacadeStub) Login(ctx context.Context, email, password string) (*model.User, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return &model.User{ID: "1", Name: "Alice", Email: email, ImageURL: "https://cdn.example.com/profiles/1.png"}, nil
}

// Ping reports a healthy store by default.
func (s AccountFacadeStub) Ping(ctx context.Context) error {
	if s.PingFn != nil {
		return s.PingFn(ctx)
	}
	return nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
