package services

import (
	"errors"
	"strings"

	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/app/repositories"
	"gorm.io/gorm"
)

// MessageService handles order threads and pre-order lead chats.
type MessageService struct {
	messages *repositories.MessageRepository
	orders   *repositories.OrderRepository
	leads    *repositories.LeadRepository
}

func NewMessageService() *MessageService {
	return &MessageService{
		messages: repositories.NewMessageRepository(),
		orders:   repositories.NewOrderRepository(),
		leads:    repositories.NewLeadRepository(),
	}
}

// PostInput is the payload for posting into an order thread.
type PostInput struct {
	Content     string `json:"content" validate:"required,max=10000"`
	Type        string `json:"type"`
	RecipientID *uint  `json:"recipient_id"`
}

// PostToOrder appends a message to an order's thread. Only the order's
// participants may post.
func (s *MessageService) PostToOrder(orderID, senderID uint, role models.Role, in PostInput) (models.Message, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Message{}, ErrNotFound
		}
		return models.Message{}, err
	}
	if !CanAccessOrder(order, senderID, role) {
		return models.Message{}, ErrForbidden
	}

	msgType := models.MessageType(in.Type)
	if in.Type == "" {
		msgType = models.MessageChat
	}
	if !msgType.Valid() || msgType == models.MessageLeadChat {
		return models.Message{}, Invalid("unknown message type")
	}

	msg := models.Message{
		OrderID:     &order.ID,
		SenderID:    senderID,
		RecipientID: in.RecipientID,
		Content:     strings.TrimSpace(in.Content),
		Type:        msgType,
	}
	if msg.Content == "" {
		return models.Message{}, Invalid("content is required")
	}
	if err := s.messages.Create(&msg); err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// OrderThread returns an order's messages, oldest first, access-checked the
// same way as the order itself.
func (s *MessageService) OrderThread(orderID, actorID uint, role models.Role) ([]models.Message, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !CanAccessOrder(order, actorID, role) {
		return nil, ErrForbidden
	}
	return s.messages.ForOrder(orderID)
}

// PostToLead appends to a pre-order lead chat. senderID 0 marks the anonymous
// visitor side; staff replies carry their real id.
func (s *MessageService) PostToLead(leadID, senderID uint, content string) (models.Message, error) {
	if _, err := s.leads.FindByID(leadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Message{}, ErrNotFound
		}
		return models.Message{}, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return models.Message{}, Invalid("content is required")
	}

	msg := models.Message{
		LeadID:   &leadID,
		SenderID: senderID,
		Content:  content,
		Type:     models.MessageLeadChat,
	}
	if err := s.messages.Create(&msg); err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// LeadThread returns a lead chat, oldest first. The visitor polls this with
// no account, so there is no actor check; the lead id itself is the handle.
func (s *MessageService) LeadThread(leadID uint) ([]models.Message, error) {
	if _, err := s.leads.FindByID(leadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.messages.ForLead(leadID)
}

// MarkRead flips the read flag. Only the message's recipient (or an admin)
// may mark it.
func (s *MessageService) MarkRead(messageID, actorID uint, role models.Role) error {
	msg, err := s.messages.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if role != models.RoleAdmin {
		if msg.RecipientID == nil || *msg.RecipientID != actorID {
			return ErrForbidden
		}
	}
	return s.messages.MarkRead(messageID)
}
