package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Wildcard is the scope value that matches any goods category or postal service.
const Wildcard = "*"

// ScopeValue is a configuration scope dimension: either the wildcard or a
// concrete value. Matching and specificity decisions go through this type
// instead of ad-hoc string comparison.
type ScopeValue string

func (v ScopeValue) IsWildcard() bool { return string(v) == Wildcard }

// Matches reports whether the scope admits the requested value. The wildcard
// admits everything, including the empty request value.
func (v ScopeValue) Matches(requested string) bool {
	if v.IsWildcard() {
		return true
	}
	return string(v) == requested
}

// RateConfiguration is one time-bounded, scoped tariff rate record.
// Rate values are never mutated in place: a newer record supersedes, and
// operator removal flips is_active off.
type RateConfiguration struct {
	ID snowflake.ID `gorm:"primaryKey"`

	OriginCountry      string     `gorm:"column:origin_country;type:text;not null;index:idx_rate_corridor"`
	DestinationCountry string     `gorm:"column:destination_country;type:text;not null;index:idx_rate_corridor"`
	GoodsCategory      ScopeValue `gorm:"column:goods_category;type:text;not null;default:'*'"`
	PostalService      ScopeValue `gorm:"column:postal_service;type:text;not null;default:'*'"`

	StartDate time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null"`

	// nil weight bounds mean the record matches any weight.
	MinWeight *float64 `gorm:"column:min_weight;type:numeric(10,3)"`
	MaxWeight *float64 `gorm:"column:max_weight;type:numeric(10,3)"`

	TariffRate        float64 `gorm:"column:tariff_rate;type:numeric(6,4);not null"`
	CategorySurcharge float64 `gorm:"column:category_surcharge;type:numeric(6,4);not null;default:0"`

	MinimumTariff float64 `gorm:"column:minimum_tariff;type:numeric(12,2);not null;default:0"`
	// Zero means uncapped.
	MaximumTariff float64 `gorm:"column:maximum_tariff;type:numeric(12,2);not null;default:0"`

	Currency string `gorm:"type:text;not null;default:'USD'"`
	IsActive bool   `gorm:"column:is_active;not null"`
	Notes    string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (RateConfiguration) TableName() string { return "rate_configurations" }

func (r *RateConfiguration) Validate() error {
	if r.OriginCountry == "" {
		return ErrInvalidOrigin
	}
	if r.DestinationCountry == "" {
		return ErrInvalidDestination
	}
	if r.TariffRate < 0 {
		return ErrInvalidTariffRate
	}
	if r.EndDate.Before(r.StartDate) {
		return ErrInvalidDateWindow
	}
	if r.MinWeight != nil && r.MaxWeight != nil && *r.MaxWeight < *r.MinWeight {
		return ErrInvalidWeightWindow
	}
	if r.MaximumTariff > 0 && r.MaximumTariff < r.MinimumTariff {
		return ErrInvalidTariffBounds
	}
	return nil
}

// InDateWindow reports whether day falls inside [StartDate, EndDate].
// Both bounds are inclusive calendar dates.
func (r *RateConfiguration) InDateWindow(day time.Time) bool {
	d := truncateToDay(day)
	return !d.Before(truncateToDay(r.StartDate)) && !d.After(truncateToDay(r.EndDate))
}

// InWeightWindow reports whether the weight satisfies the record's bounds.
// A nil weight on either side matches: an unconstrained record accepts any
// shipment and an unweighted request accepts any record.
func (r *RateConfiguration) InWeightWindow(weight *float64) bool {
	if weight == nil {
		return true
	}
	if r.MinWeight != nil && *weight < *r.MinWeight {
		return false
	}
	if r.MaxWeight != nil && *weight > *r.MaxWeight {
		return false
	}
	return true
}

// Specificity ranks how precisely the record pins down its scope, used to
// pick among multiple matching records. Exact category and service beats
// exact category with wildcard service, which beats wildcard category with
// exact service, which beats double wildcard.
func (r *RateConfiguration) Specificity() int {
	score := 0
	if !r.GoodsCategory.IsWildcard() {
		score += 2
	}
	if !r.PostalService.IsWildcard() {
		score++
	}
	return score
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
