package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Shipment is one processed shipment kept for historical rate derivation and
// batch recalculation.
type Shipment struct {
	ID snowflake.ID `gorm:"primaryKey"`

	OriginCountry      string `gorm:"column:origin_country;type:text;not null;index:idx_shipment_corridor"`
	DestinationCountry string `gorm:"column:destination_country;type:text;not null;index:idx_shipment_corridor"`
	GoodsCategory      string `gorm:"column:goods_category;type:text"`
	PostalService      string `gorm:"column:postal_service;type:text"`

	DeclaredValue float64   `gorm:"column:declared_value;type:numeric(12,2);not null"`
	Weight        *float64  `gorm:"type:numeric(10,3)"`
	ShipDate      time.Time `gorm:"column:ship_date;type:date;not null"`

	TariffAmount float64 `gorm:"column:tariff_amount;type:numeric(12,2);not null;default:0"`
	Currency     string  `gorm:"type:text;not null;default:'USD'"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Shipment) TableName() string { return "shipments" }

// CorridorAggregate is the roll-up of shipment history for one
// origin/destination pair.
type CorridorAggregate struct {
	OriginCountry      string  `gorm:"column:origin_country"`
	DestinationCountry string  `gorm:"column:destination_country"`
	ShipmentCount      int64   `gorm:"column:shipment_count"`
	TotalDeclaredValue float64 `gorm:"column:total_declared_value"`
	TotalTariffAmount  float64 `gorm:"column:total_tariff_amount"`
}

// HistoricalRate is total tariff over total declared value, zero when the
// corridor carries no declared value.
func (a CorridorAggregate) HistoricalRate() float64 {
	if a.TotalDeclaredValue <= 0 {
		return 0
	}
	return a.TotalTariffAmount / a.TotalDeclaredValue
}

// Stats summarizes the whole shipment store for the system overview.
type Stats struct {
	TotalShipments     int64   `gorm:"column:total_shipments"`
	TotalDeclaredValue float64 `gorm:"column:total_declared_value"`
	TotalTariffAmount  float64 `gorm:"column:total_tariff_amount"`
}

func (s Stats) AverageRate() float64 {
	if s.TotalDeclaredValue <= 0 {
		return 0
	}
	return s.TotalTariffAmount / s.TotalDeclaredValue
}
