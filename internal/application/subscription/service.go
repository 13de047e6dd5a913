// Package subscription wires the monthly package domain to storage.
package subscription

import (
	"context"

	"github.com/go-playground/validator/v10"

	"courtledger/internal/domain/subscription"
	"courtledger/internal/shared/biztime"
	"courtledger/internal/shared/config"
	apperrors "courtledger/internal/shared/errors"
	"courtledger/internal/shared/logger"
)

// Input carries one subscription. HoursPerSession accepts either a bare
// integer or the descriptive "N (HH:MM-HH:MM)" form.
type Input struct {
	Month           string `validate:"required"`
	CustomerName    string `validate:"required"`
	Court           string
	SessionsPerWeek int    `validate:"min=1,max=14"`
	HoursPerSession string `validate:"required"`
	Weekdays        string
	Notes           string
}

type Service struct {
	repo     subscription.Repository
	cfg      config.SubscriptionConfig
	validate *validator.Validate
	log      logger.Interface
}

func NewService(repo subscription.Repository, cfg config.SubscriptionConfig, log logger.Interface) *Service {
	if log == nil {
		log = logger.NewLogger()
	}
	return &Service{
		repo:     repo,
		cfg:      cfg,
		validate: validator.New(),
		log:      log.Named("subscription.service"),
	}
}

func (s *Service) build(in Input) (*subscription.Subscription, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	month, err := biztime.NormalizeMonth(in.Month)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	hours, err := subscription.ParseSessionHours(in.HoursPerSession)
	if err != nil {
		return nil, err
	}
	return subscription.NewSubscription(month, in.CustomerName, in.Court,
		in.SessionsPerWeek, hours, in.Weekdays, in.Notes, s.cfg.BasePrice)
}

// Add persists one new subscription with its derived multiplier and price.
func (s *Service) Add(ctx context.Context, in Input) (*subscription.Subscription, error) {
	sub, err := s.build(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Append(ctx, sub); err != nil {
		return nil, err
	}
	s.log.Info("subscription added", "sub_id", sub.ID, "month", sub.Month, "customer", sub.CustomerName)
	return sub, nil
}

func (s *Service) List(ctx context.Context) ([]*subscription.Subscription, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListMonth(ctx context.Context, month string) ([]*subscription.Subscription, error) {
	month, err := biztime.NormalizeMonth(month)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	return s.repo.ListMonth(ctx, month)
}

func (s *Service) FindByID(ctx context.Context, subID string) (*subscription.Subscription, error) {
	return s.repo.FindByID(ctx, subID)
}

// UpdateByID rewrites the identified subscription; price and multiplier are
// re-derived from the new inputs.
func (s *Service) UpdateByID(ctx context.Context, subID string, in Input) (bool, error) {
	updated, err := s.build(in)
	if err != nil {
		return false, err
	}
	return s.repo.UpdateByID(ctx, subID, updated)
}

// UpdateFirst rewrites the first subscription matching (month, oldName).
// Natural-key convenience for callers without the stored ID.
func (s *Service) UpdateFirst(ctx context.Context, month, oldName string, in Input) (bool, error) {
	month, err := biztime.NormalizeMonth(month)
	if err != nil {
		return false, apperrors.NewValidationError(err.Error())
	}
	updated, err := s.build(in)
	if err != nil {
		return false, err
	}
	return s.repo.UpdateFirst(ctx, month, oldName, updated)
}

func (s *Service) DeleteByID(ctx context.Context, subID string) (bool, error) {
	return s.repo.DeleteByID(ctx, subID)
}

func (s *Service) DeleteFirst(ctx context.Context, month, name string) (bool, error) {
	month, err := biztime.NormalizeMonth(month)
	if err != nil {
		return false, apperrors.NewValidationError(err.Error())
	}
	return s.repo.DeleteFirst(ctx, month, name)
}

// PricePreview derives the package price without persisting anything.
func (s *Service) PricePreview(sessionsPerWeek int, hoursPerSession string) (int64, error) {
	hours, err := subscription.ParseSessionHours(hoursPerSession)
	if err != nil {
		return 0, err
	}
	return subscription.ComputePrice(sessionsPerWeek, hours.Hours, s.cfg.BasePrice)
}

// MonthTotal sums subscription prices for one month.
func (s *Service) MonthTotal(ctx context.Context, month string) (int64, error) {
	subs, err := s.ListMonth(ctx, month)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, sub := range subs {
		total += sub.Price
	}
	return total, nil
}
