package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/inventory-service/internal/domains/orders/domain"
	"github.com/example/inventory-service/internal/domains/orders/ports"
	platformpostgres "github.com/example/inventory-service/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists purchase orders in PostgreSQL using GORM. Lines are
// owned by the order: saving replaces the full line set and deleting the
// order cascades to its lines.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed order repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the purchase order header to a relational table.
type orderRecord struct {
	ID            int64           `gorm:"primaryKey;column:id"`
	CustomerName  string          `gorm:"column:customer_name"`
	CustomerEmail string          `gorm:"column:customer_email;index"`
	OrderDate     time.Time       `gorm:"column:order_date;index"`
	Status        string          `gorm:"column:status;type:varchar(32);index"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2)"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "purchase_orders" }

// orderLineRecord maps one line to a relational row.
type orderLineRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	OrderID     int64           `gorm:"column:order_id;index;not null"`
	ProductID   int64           `gorm:"column:product_id;not null"`
	ProductName string          `gorm:"column:product_name"`
	Quantity    int             `gorm:"column:quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2)"`
	Subtotal    decimal.Decimal `gorm:"column:subtotal;type:numeric(14,2)"`
}

func (orderLineRecord) TableName() string { return "order_lines" }

// Save upserts the order header and replaces its line set in one shot.
// Callers that need multi-aggregate atomicity run this inside a Transactor
// unit of work so the header and the lines always land together.
func (r *Repository) Save(ctx context.Context, order *domain.PurchaseOrder) (*domain.PurchaseOrder, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	conn := r.conn(ctx)
	if err := conn.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"customer_name":  record.CustomerName,
				"customer_email": record.CustomerEmail,
				"order_date":     record.OrderDate,
				"status":         record.Status,
				"total_amount":   record.TotalAmount,
				"updated_at":     gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	if err := conn.Where("order_id = ?", record.ID).Delete(&orderLineRecord{}).Error; err != nil {
		return nil, err
	}
	lines := toLineRecords(record.ID, order.Lines)
	if len(lines) > 0 {
		if err := conn.Create(&lines).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order with its lines.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.conn(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	lines, err := r.linesFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	return record.toDomain(lines[id]), nil
}

// Delete removes an order and its lines.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	conn := r.conn(ctx)
	if err := conn.Where("order_id = ?", id).Delete(&orderLineRecord{}).Error; err != nil {
		return err
	}
	result := conn.Delete(&orderRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all orders.
func (r *Repository) List(ctx context.Context) ([]*domain.PurchaseOrder, error) {
	return r.find(ctx, func(db *gorm.DB) *gorm.DB { return db })
}

// FindByStatus returns orders filtered by lifecycle state.
func (r *Repository) FindByStatus(ctx context.Context, status domain.Status) ([]*domain.PurchaseOrder, error) {
	return r.find(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", string(status))
	})
}

// FindByCustomerEmail returns orders placed by one customer.
func (r *Repository) FindByCustomerEmail(ctx context.Context, email string) ([]*domain.PurchaseOrder, error) {
	return r.find(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(customer_email) = ?", strings.ToLower(strings.TrimSpace(email)))
	})
}

// FindBetweenDates returns orders whose order date lies in [start, end].
func (r *Repository) FindBetweenDates(ctx context.Context, start, end time.Time) ([]*domain.PurchaseOrder, error) {
	return r.find(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("order_date BETWEEN ? AND ?", start, end)
	})
}

func (r *Repository) find(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]*domain.PurchaseOrder, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := scope(r.conn(ctx)).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(records))
	for i := range records {
		ids = append(ids, records[i].ID)
	}
	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	orders := make([]*domain.PurchaseOrder, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain(lines[records[i].ID]))
	}
	return orders, nil
}

func (r *Repository) linesFor(ctx context.Context, orderIDs []int64) (map[int64][]orderLineRecord, error) {
	grouped := make(map[int64][]orderLineRecord, len(orderIDs))
	if len(orderIDs) == 0 {
		return grouped, nil
	}
	var records []orderLineRecord
	if err := r.conn(ctx).Where("order_id IN ?", orderIDs).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	for i := range records {
		grouped[records[i].OrderID] = append(grouped[records[i].OrderID], records[i])
	}
	return grouped, nil
}

func (r *Repository) conn(ctx context.Context) *gorm.DB {
	return platformpostgres.FromContext(ctx, r.db).WithContext(ctx)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.PurchaseOrder) orderRecord {
	return orderRecord{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		OrderDate:     order.OrderDate,
		Status:        string(order.Status),
		TotalAmount:   order.TotalAmount,
	}
}

func toLineRecords(orderID int64, lines []domain.OrderLine) []orderLineRecord {
	records := make([]orderLineRecord, 0, len(lines))
	for _, line := range lines {
		records = append(records, orderLineRecord{
			OrderID:     orderID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal,
		})
	}
	return records
}

func (r orderRecord) toDomain(lines []orderLineRecord) *domain.PurchaseOrder {
	order := &domain.PurchaseOrder{
		ID:            r.ID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		OrderDate:     r.OrderDate,
		Status:        domain.Status(r.Status),
		TotalAmount:   r.TotalAmount,
	}
	for _, line := range lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal,
		})
	}
	return order
}
