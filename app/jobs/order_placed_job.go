package jobs

import (
	"fmt"

	"github.com/careerloft/careerloft/pkg/notification"
)

// OrderPlacedJob notifies the business channels about a new paid order.
type OrderPlacedJob struct {
	OrderID  uint `json:"order_id"`
	ClientID uint `json:"client_id"`
	Price    int  `json:"price"`
}

func (j OrderPlacedJob) Handle() error {
	n := &orderPlacedNotification{orderID: j.OrderID, clientID: j.ClientID, price: j.Price}
	if errs := notification.Send("", n); len(errs) > 0 {
		return fmt.Errorf("order placed notification: %v", errs[0])
	}
	return nil
}

type orderPlacedNotification struct {
	orderID  uint
	clientID uint
	price    int
}

func (n *orderPlacedNotification) Via() []string { return []string{"slack"} }

func (n *orderPlacedNotification) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: fmt.Sprintf("New order #%d placed by client %d for $%d", n.orderID, n.clientID, n.price),
	}
}
