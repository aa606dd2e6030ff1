package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/commercekit/go-order-api/internal/domains/orders/domain"
	"github.com/commercekit/go-order-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to a relational table. ProductIDs is
// a denormalized array so orders containing a given product can be found
// without joining the lines table.
type orderRecord struct {
	ID         string         `gorm:"primaryKey;column:id;size:64"`
	CustomerID string         `gorm:"column:customer_id;size:64;index"`
	ProductIDs pq.StringArray `gorm:"column:product_ids;type:text[]"`
	CreatedAt  time.Time      `gorm:"column:created_at;index"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// orderLineRecord maps one order line to a relational row.
type orderLineRecord struct {
	ID        int64   `gorm:"primaryKey;autoIncrement;column:id"`
	OrderID   string  `gorm:"column:order_id;size:64;index"`
	ProductID string  `gorm:"column:product_id;size:64;index"`
	UnitPrice float64 `gorm:"column:unit_price"`
	Quantity  int     `gorm:"column:quantity"`
}

func (orderLineRecord) TableName() string { return "order_lines" }

// Create inserts the order and its lines in one transaction.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := orderRecord{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		ProductIDs: productIDs(order),
		CreatedAt:  order.CreatedAt,
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	lines := make([]orderLineRecord, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, orderLineRecord{
			OrderID:   record.ID,
			ProductID: line.ProductID,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order with its lines.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var lines []orderLineRecord
	if err := r.db.WithContext(ctx).Where("order_id = ?", id).Order("id").Find(&lines).Error; err != nil {
		return nil, err
	}
	return toDomain(record, lines), nil
}

// List returns all orders, oldest first.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("created_at").Find(&records).Error; err != nil {
		return nil, err
	}
	return r.hydrate(ctx, records)
}

// ListByProduct returns orders containing the given product, using the
// denormalized product id array.
func (r *Repository) ListByProduct(ctx context.Context, productID string) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("? = ANY(product_ids)", productID).
		Order("created_at").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return r.hydrate(ctx, records)
}

func (r *Repository) hydrate(ctx context.Context, records []orderRecord) ([]*domain.Order, error) {
	if len(records) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	var lines []orderLineRecord
	if err := r.db.WithContext(ctx).Where("order_id IN ?", ids).Order("id").Find(&lines).Error; err != nil {
		return nil, err
	}
	linesByOrder := make(map[string][]orderLineRecord, len(records))
	for _, line := range lines {
		linesByOrder[line.OrderID] = append(linesByOrder[line.OrderID], line)
	}
	orders := make([]*domain.Order, 0, len(records))
	for _, record := range records {
		orders = append(orders, toDomain(record, linesByOrder[record.ID]))
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func productIDs(order *domain.Order) pq.StringArray {
	ids := make(pq.StringArray, 0, len(order.Lines))
	seen := make(map[string]bool, len(order.Lines))
	for _, line := range order.Lines {
		if seen[line.ProductID] {
			continue
		}
		seen[line.ProductID] = true
		ids = append(ids, line.ProductID)
	}
	return ids
}

func toDomain(record orderRecord, lines []orderLineRecord) *domain.Order {
	order := &domain.Order{
		ID:         record.ID,
		CustomerID: record.CustomerID,
		CreatedAt:  record.CreatedAt,
	}
	for _, line := range lines {
		order.Lines = append(order.Lines, domain.Line{
			ProductID: line.ProductID,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}
	return order
}
