package app

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/profilecard/internal/domain/errors"
	"github.com/polkiloo/profilecard/internal/domain/model"
	"github.com/polkiloo/profilecard/internal/domain/repository"
	"github.com/polkiloo/profilecard/internal/metrics"
	"github.com/polkiloo/profilecard/internal/usecase"
)

// OutcomeRecorder counts registration and login outcomes.
type OutcomeRecorder interface {
	RecordRegistration(outcome string)
	RecordLogin(outcome string)
}

// ProfileFacade exposes account operations to the HTTP layer.
type ProfileFacade struct {
	accounts *usecase.AccountUseCase
	store    repository.Factory
	recorder OutcomeRecorder
}

func NewProfileFacade(accounts *usecase.AccountUseCase, store repository.Factory, recorder OutcomeRecorder) *ProfileFacade {
	return &ProfileFacade{accounts: accounts, store: store, recorder: recorder}
}

func (f *ProfileFacade) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	usr, err := f.accounts.Register(ctx, reg)
	f.recorder.RecordRegistration(registrationOutcome(err))
	return usr, err
}

func (f *ProfileFacade) Login(ctx context.Context, email, password string) (*model.User, error) {
	usr, err := f.accounts.Login(ctx, email, password)
	f.recorder.RecordLogin(loginOutcome(err))
	return usr, err
}

func (f *ProfileFacade) Ping(ctx context.Context) error {
	return f.store.Ping(ctx)
}

func registrationOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, domainErrors.ErrMissingFile):
		return metrics.OutcomeMissingFile
	case errors.Is(err, domainErrors.ErrMissingFields):
		return metrics.OutcomeMissingFields
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		return metrics.OutcomeDuplicate
	default:
		return metrics.OutcomeError
	}
}

func loginOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, domainErrors.ErrMissingFields):
		return metrics.OutcomeMissingFields
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		return metrics.OutcomeInvalidCredentials
	default:
		return metrics.OutcomeError
	}
}
