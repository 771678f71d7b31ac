package test

import (
	"context"
	"strconv"
	"sync"

	domainErrors "github.com/polkiloo/profilecard/internal/domain/errors"
	"github.com/polkiloo/profilecard/internal/domain/model"
	"github.com/polkiloo/profilecard/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory and enforces unique emails like the real stores.
type UserRepositoryStub struct {
	mu sync.Mutex

	Users map[string]*model.User
	Next  int64
	Err   error
	// FindErr overrides Err for FindByEmail only.
	FindErr error
	// CreateErr overrides Err for Create only.
	CreateErr error
	Creates   int
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		Next:  1,
	}
}

// Create registers user unless the email exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Creates++
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if _, exists := s.Users[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	created := *user
	created.ID = strconv.FormatInt(s.Next, 10)
	s.Next++
	s.Users[created.Email] = &created
	out := created
	return &out, nil
}

// FindByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		out := *user
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Count returns the number of stored users.
func (s *UserRepositoryStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Users)
}

// StoreStub implements repository.Factory over UserRepositoryStub.
type StoreStub struct {
	Repo    *UserRepositoryStub
	PingErr error
	Closed  bool
}

// NewStoreStub returns a store with an empty in-memory repository.
func NewStoreStub() *StoreStub {
	return &StoreStub{Repo: NewUserRepositoryStub()}
}

// Users returns the in-memory repository.
func (s *StoreStub) Users() repository.UserRepository {
	return s.Repo
}

// Ping returns the configured error.
func (s *StoreStub) Ping(context.Context) error {
	return s.PingErr
}

// Close marks the store as closed.
func (s *StoreStub) Close(context.Context) error {
	s.Closed = true
	return nil
}

var _ repository.Factory = (*StoreStub)(nil)
