package repositories

import (
	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/pkg/orm"
)

// MessageRepository handles database operations for Message.
// Messages are append-only: there is no update path besides the read flag,
// and no delete path at all.
type MessageRepository struct{}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

// FindByID looks up a message by primary key.
func (r *MessageRepository) FindByID(id uint) (models.Message, error) {
	var msg models.Message
	err := orm.DB().Model(&models.Message{}).Where("id = ?", id).First(&msg)
	return msg, err
}

// Create appends a new message.
func (r *MessageRepository) Create(msg *models.Message) error {
	return orm.DB().Create(msg)
}

// ForOrder returns an order's thread, oldest first.
func (r *MessageRepository) ForOrder(orderID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := orm.DB().Model(&models.Message{}).
		Where("order_id = ?", orderID).
		Order("created_at").
		Get(&msgs)
	return msgs, err
}

// ForLead returns a pre-order lead chat, oldest first.
func (r *MessageRepository) ForLead(leadID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := orm.DB().Model(&models.Message{}).
		Where("lead_id = ?", leadID).
		Order("created_at").
		Get(&msgs)
	return msgs, err
}

// MarkRead flips the read flag on one message.
func (r *MessageRepository) MarkRead(id uint) error {
	return orm.DB().Model(&models.Message{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_read": true})
}
