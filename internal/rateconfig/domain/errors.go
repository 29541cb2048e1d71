package domain

import "errors"

var (
	ErrInvalidOrigin       = errors.New("invalid_origin_country")
	ErrInvalidDestination  = errors.New("invalid_destination_country")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
	ErrInvalidTariffRate   = errors.New("invalid_tariff_rate")
	ErrInvalidDateWindow   = errors.New("invalid_date_window")
	ErrInvalidWeightWindow = errors.New("invalid_weight_window")
	ErrInvalidTariffBounds = errors.New("invalid_tariff_bounds")
	ErrNoEnabledCategories = errors.New("no_enabled_categories")
	ErrBulkCreateFailed    = errors.New("bulk_create_failed")
)
