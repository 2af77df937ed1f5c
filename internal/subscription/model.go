package subscription

import (
	"time"
)

// PaymentCycle is how often a subscription renews.
type PaymentCycle string

const (
	CycleMonthly   PaymentCycle = "monthly"
	CycleYearly    PaymentCycle = "yearly"
	CycleWeekly    PaymentCycle = "weekly"
	CycleQuarterly PaymentCycle = "quarterly"
)

// Valid reports whether the cycle is one of the known values.
func (p PaymentCycle) Valid() bool {
	switch p {
	case CycleMonthly, CycleYearly, CycleWeekly, CycleQuarterly:
		return true
	}
	return false
}

// Subscription is one recurring payment tracked for a user.
type Subscription struct {
	ID              string       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string       `gorm:"type:uuid;index;not null" json:"userId"`
	Name            string       `gorm:"not null" json:"name"`
	Price           int64        `gorm:"not null" json:"price"`
	Currency        string       `gorm:"size:3;not null;default:JPY" json:"currency"`
	PaymentCycle    PaymentCycle `gorm:"not null" json:"paymentCycle"`
	NextPaymentDate time.Time    `gorm:"not null" json:"nextPaymentDate"`
	Category        string       `json:"category,omitempty"`
	Notes           string       `json:"notes,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// MonthlyAmount normalizes the price to a per-month figure, used for
// spending summaries across mixed cycles.
func (s Subscription) MonthlyAmount() float64 {
	price := float64(s.Price)
	switch s.PaymentCycle {
	case CycleYearly:
		return price / 12
	case CycleQuarterly:
		return price / 3
	case CycleWeekly:
		return price * 52 / 12
	default:
		return price
	}
}
