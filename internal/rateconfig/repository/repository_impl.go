package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	ratedomain "github.com/parcelroute/tarifa/internal/rateconfig/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ratedomain.Repository {
	return &repository{db: db}
}

func (r *repository) ListActiveForCorridor(ctx context.Context, origin, destination string) ([]ratedomain.RateConfiguration, error) {
	var items []ratedomain.RateConfiguration
	err := r.db.WithContext(ctx).
		Model(&ratedomain.RateConfiguration{}).
		Where("origin_country = ? AND destination_country = ? AND is_active = ?", origin, destination, true).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) List(ctx context.Context, filter ratedomain.ListRequest) ([]ratedomain.RateConfiguration, error) {
	var items []ratedomain.RateConfiguration
	stmt := r.db.WithContext(ctx).Model(&ratedomain.RateConfiguration{})

	if filter.OriginCountry != "" {
		stmt = stmt.Where("origin_country = ?", filter.OriginCountry)
	}
	if filter.DestinationCountry != "" {
		stmt = stmt.Where("destination_country = ?", filter.DestinationCountry)
	}
	if filter.IsActive != nil {
		stmt = stmt.Where("is_active = ?", *filter.IsActive)
	}

	stmt = stmt.Order(sortClause(filter.SortBy, filter.OrderBy))

	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Create(ctx context.Context, record *ratedomain.RateConfiguration) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) CreateBatch(ctx context.Context, records []*ratedomain.RateConfiguration) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			if err := tx.Create(record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*ratedomain.RateConfiguration, error) {
	var record ratedomain.RateConfiguration
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&record).Error
	if err != nil {
		return nil, err
	}
	if record.ID == 0 {
		return nil, nil
	}
	return &record, nil
}

func (r *repository) Update(ctx context.Context, record *ratedomain.RateConfiguration) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE rate_configurations
		 SET is_active = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		record.IsActive,
		record.Notes,
		record.UpdatedAt,
		record.ID,
	).Error
}

var sortableColumns = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"start_date":     true,
	"origin_country": true,
}

func sortClause(sortBy, orderBy string) string {
	column := strings.ToLower(strings.TrimSpace(sortBy))
	if !sortableColumns[column] {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(strings.TrimSpace(orderBy), "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}
