package repositories

import (
	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/pkg/orm"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// FindByID looks up an order by primary key.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).Where("id = ?", id).First(&order)
	return order, err
}

// Create persists a new order.
func (r *OrderRepository) Create(order *models.Order) error {
	return orm.DB().Create(order)
}

// Update persists changes to an existing order. gorm bumps UpdatedAt on save.
func (r *OrderRepository) Update(order *models.Order) error {
	return orm.DB().Save(order)
}

// ForClient returns every order owned by clientID, newest first.
func (r *OrderRepository) ForClient(clientID uint) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Get(&orders)
	return orders, err
}

// ForWriter returns every order assigned to writerID, newest first.
func (r *OrderRepository) ForWriter(writerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).
		Where("writer_id = ?", writerID).
		Order("created_at DESC").
		Get(&orders)
	return orders, err
}

// All returns all orders with pagination (admin listing).
func (r *OrderRepository) All(page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	pagination, err := orm.DB().Model(&models.Order{}).GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}
