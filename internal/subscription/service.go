package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidPaymentCycle is a business-rule violation; route handlers
// reclassify it as a validation failure, not a server error.
var ErrInvalidPaymentCycle = errors.New("invalid payment cycle")

// Service implements the subscription use cases. All operations are
// scoped to the authenticated user's ID supplied by the caller.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields of a new subscription.
type CreateInput struct {
	UserID          string
	Name            string
	Price           int64
	Currency        string
	PaymentCycle    string
	NextPaymentDate time.Time
	Category        string
	Notes           string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Subscription, error) {
	cycle := PaymentCycle(in.PaymentCycle)
	if !cycle.Valid() {
		return nil, ErrInvalidPaymentCycle
	}

	currency := in.Currency
	if currency == "" {
		currency = "JPY"
	}

	sub := &Subscription{
		ID:              uuid.NewString(),
		UserID:          in.UserID,
		Name:            in.Name,
		Price:           in.Price,
		Currency:        currency,
		PaymentCycle:    cycle,
		NextPaymentDate: in.NextPaymentDate,
		Category:        in.Category,
		Notes:           in.Notes,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Subscription, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Subscription, error) {
	return s.repo.Get(ctx, userID, id)
}

// UpdateInput carries the full replacement state for a subscription.
type UpdateInput struct {
	UserID          string
	ID              string
	Name            string
	Price           int64
	Currency        string
	PaymentCycle    string
	NextPaymentDate time.Time
	Category        string
	Notes           string
}

func (s *Service) Update(ctx context.Context, in UpdateInput) (*Subscription, error) {
	cycle := PaymentCycle(in.PaymentCycle)
	if !cycle.Valid() {
		return nil, ErrInvalidPaymentCycle
	}

	currency := in.Currency
	if currency == "" {
		currency = "JPY"
	}

	sub := &Subscription{
		ID:              in.ID,
		UserID:          in.UserID,
		Name:            in.Name,
		Price:           in.Price,
		Currency:        currency,
		PaymentCycle:    cycle,
		NextPaymentDate: in.NextPaymentDate,
		Category:        in.Category,
		Notes:           in.Notes,
	}
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, in.UserID, in.ID)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

// MonthlyTotal sums the monthly-equivalent spend across the user's
// subscriptions.
func (s *Service) MonthlyTotal(ctx context.Context, userID string) (float64, error) {
	subs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, sub := range subs {
		total += sub.MonthlyAmount()
	}
	return total, nil
}
