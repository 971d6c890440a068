package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/inventory-service/internal/domains/inventory/domain"
	"github.com/example/inventory-service/internal/domains/inventory/ports"
	platformpostgres "github.com/example/inventory-service/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists stock levels in PostgreSQL using GORM. Adjustments are
// conditional updates so the non-negative invariant holds under concurrent
// decrements without an application-level lock.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed stock repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// stockRecord maps a stock level to a relational row.
type stockRecord struct {
	ProductID int64     `gorm:"primaryKey;column:product_id"`
	Quantity  int       `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (stockRecord) TableName() string { return "stock_levels" }

// GetByProduct fetches the stock row for a product.
func (r *Repository) GetByProduct(ctx context.Context, productID int64) (*domain.StockLevel, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record stockRecord
	if err := r.conn(ctx).First(&record, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNoStockRecord
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Upsert writes an absolute quantity for a product.
func (r *Repository) Upsert(ctx context.Context, level *domain.StockLevel) (*domain.StockLevel, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if level == nil {
		return nil, errors.New("stock level is nil")
	}
	if level.Quantity < 0 {
		return nil, domain.ErrNegativeQuantity
	}
	record := stockRecord{ProductID: level.ProductID, Quantity: level.Quantity}
	if err := r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   record.Quantity,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByProduct(ctx, level.ProductID)
}

// AdjustQuantity applies a signed delta with a conditional update: the row is
// only written when the resulting quantity stays non-negative, so two
// concurrent decrements can never both succeed on the same stock.
func (r *Repository) AdjustQuantity(ctx context.Context, productID int64, delta int) (*domain.StockLevel, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.conn(ctx).Model(&stockRecord{}).
		Where("product_id = ? AND quantity + ? >= 0", productID, delta).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected > 0 {
		return r.GetByProduct(ctx, productID)
	}
	// No row written: the record is either missing or the delta would have
	// driven it negative.
	if _, err := r.GetByProduct(ctx, productID); err == nil {
		return nil, domain.ErrInvalidAdjustment
	} else if !errors.Is(err, ports.ErrNoStockRecord) {
		return nil, err
	}
	if delta < 0 {
		return nil, domain.ErrInvalidAdjustment
	}
	record := stockRecord{ProductID: productID, Quantity: delta}
	insert := r.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
	if insert.Error != nil {
		return nil, insert.Error
	}
	if insert.RowsAffected == 0 {
		// Lost the create race; fold the delta into the now-existing row.
		return r.AdjustQuantity(ctx, productID, delta)
	}
	return r.GetByProduct(ctx, productID)
}

// List returns all stock rows.
func (r *Repository) List(ctx context.Context) ([]*domain.StockLevel, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []stockRecord
	if err := r.conn(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	levels := make([]*domain.StockLevel, 0, len(records))
	for i := range records {
		levels = append(levels, records[i].toDomain())
	}
	return levels, nil
}

func (r *Repository) conn(ctx context.Context) *gorm.DB {
	return platformpostgres.FromContext(ctx, r.db).WithContext(ctx)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres stock repository not configured")
	}
	return nil
}

func (r stockRecord) toDomain() *domain.StockLevel {
	return &domain.StockLevel{ProductID: r.ProductID, Quantity: r.Quantity}
}
