package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	shipmentdomain "github.com/parcelroute/tarifa/internal/shipment/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) shipmentdomain.Repository {
	return &repository{db: db}
}

func (r *repository) AggregateByCorridor(ctx context.Context) ([]shipmentdomain.CorridorAggregate, error) {
	var rows []shipmentdomain.CorridorAggregate
	err := r.db.WithContext(ctx).Raw(
		`SELECT origin_country, destination_country,
		        COUNT(*) AS shipment_count,
		        COALESCE(SUM(declared_value), 0) AS total_declared_value,
		        COALESCE(SUM(tariff_amount), 0) AS total_tariff_amount
		 FROM shipments
		 GROUP BY origin_country, destination_country
		 ORDER BY origin_country, destination_country`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) AggregateForCorridor(ctx context.Context, origin, destination string) (*shipmentdomain.CorridorAggregate, error) {
	var row shipmentdomain.CorridorAggregate
	err := r.db.WithContext(ctx).Raw(
		`SELECT origin_country, destination_country,
		        COUNT(*) AS shipment_count,
		        COALESCE(SUM(declared_value), 0) AS total_declared_value,
		        COALESCE(SUM(tariff_amount), 0) AS total_tariff_amount
		 FROM shipments
		 WHERE origin_country = ? AND destination_country = ?
		 GROUP BY origin_country, destination_country`,
		origin,
		destination,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ShipmentCount == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *repository) Stats(ctx context.Context) (shipmentdomain.Stats, error) {
	var stats shipmentdomain.Stats
	err := r.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) AS total_shipments,
		        COALESCE(SUM(declared_value), 0) AS total_declared_value,
		        COALESCE(SUM(tariff_amount), 0) AS total_tariff_amount
		 FROM shipments`,
	).Scan(&stats).Error
	if err != nil {
		return shipmentdomain.Stats{}, err
	}
	return stats, nil
}

func (r *repository) ListAfter(ctx context.Context, afterID snowflake.ID, limit int) ([]shipmentdomain.Shipment, error) {
	var items []shipmentdomain.Shipment
	err := r.db.WithContext(ctx).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateTariffAmount(ctx context.Context, id snowflake.ID, amount float64) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE shipments SET tariff_amount = ?, updated_at = ? WHERE id = ?`,
		amount,
		time.Now().UTC(),
		id,
	).Error
}
