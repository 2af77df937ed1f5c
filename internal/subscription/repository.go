package subscription

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dainouesuketarou/subsc-manager-sub001/internal/apperr"
)

// ErrNotFound is returned when no subscription matches (or it belongs
// to a different user — the two cases are indistinguishable on purpose).
var ErrNotFound = errors.New("subscription not found")

// Repository persists subscriptions. Every query is scoped by user ID;
// there is no way to read another user's rows through this interface.
type Repository interface {
	Create(ctx context.Context, s *Subscription) error
	ListByUser(ctx context.Context, userID string) ([]Subscription, error)
	Get(ctx context.Context, userID, id string) (*Subscription, error)
	Update(ctx context.Context, s *Subscription) error
	Delete(ctx context.Context, userID, id string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository builds the gorm-backed repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, s *Subscription) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return apperr.Query("subscription create", err)
	}
	return nil
}

func (r *gormRepository) ListByUser(ctx context.Context, userID string) ([]Subscription, error) {
	var subs []Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("next_payment_date ASC").
		Find(&subs).Error
	if err != nil {
		return nil, apperr.Query("subscription list", err)
	}
	return subs, nil
}

func (r *gormRepository) Get(ctx context.Context, userID, id string) (*Subscription, error) {
	var s Subscription
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperr.Query("subscription get", err)
	}
	return &s, nil
}

func (r *gormRepository) Update(ctx context.Context, s *Subscription) error {
	res := r.db.WithContext(ctx).
		Model(&Subscription{}).
		Where("id = ? AND user_id = ?", s.ID, s.UserID).
		Updates(map[string]any{
			"name":              s.Name,
			"price":             s.Price,
			"currency":          s.Currency,
			"payment_cycle":     s.PaymentCycle,
			"next_payment_date": s.NextPaymentDate,
			"category":          s.Category,
			"notes":             s.Notes,
		})
	if res.Error != nil {
		return apperr.Query("subscription update", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Subscription{})
	if res.Error != nil {
		return apperr.Query("subscription delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
