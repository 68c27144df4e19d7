package services

import (
	"errors"
	"fmt"

	"github.com/careerloft/careerloft/app/jobs"
	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/app/repositories"
	"github.com/careerloft/careerloft/pkg/event"
	"github.com/careerloft/careerloft/pkg/logger"
	"github.com/careerloft/careerloft/pkg/metrics"
	"github.com/careerloft/careerloft/pkg/queue"
	"gorm.io/gorm"
)

// OrderService owns the order lifecycle: checkout, status moves, writer
// assignment and the escrow sub-state.
type OrderService struct {
	orders   *repositories.OrderRepository
	users    *repositories.UserRepository
	settings *repositories.SettingsRepository
}

func NewOrderService() *OrderService {
	return &OrderService{
		orders:   repositories.NewOrderRepository(),
		users:    repositories.NewUserRepository(),
		settings: repositories.NewSettingsRepository(),
	}
}

// CheckoutInput is the payload for placing an order.
type CheckoutInput struct {
	PackageType   string   `json:"package_type" validate:"required"`
	AddOnIDs      []string `json:"add_on_ids"`
	PaymentMethod string   `json:"payment_method" validate:"required"`
	CardNumber    string   `json:"card_number"`
	TargetJobURL  string   `json:"target_job_url" validate:"nullable,max=2048"`
}

// Checkout places an order for clientID. The price is always recomputed from
// the admin catalogue; any price sent by the browser is ignored. Payment is
// recorded as paid and sits in escrow until an admin releases it.
func (s *OrderService) Checkout(clientID uint, in CheckoutInput) (models.Order, error) {
	method := models.PaymentMethod(in.PaymentMethod)
	if !method.Valid() {
		return models.Order{}, Invalid("payment_method must be card or paypal")
	}
	if method == models.PaymentCard && !luhnValid(in.CardNumber) {
		return models.Order{}, Invalid("card number failed validation")
	}

	settings, err := s.settings.Get()
	if err != nil {
		return models.Order{}, err
	}
	price, err := ComputePrice(settings, in.PackageType, in.AddOnIDs)
	if err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		ClientID:           clientID,
		PackageType:        in.PackageType,
		Status:             models.OrderPending,
		Price:              price,
		PaymentMethod:      method,
		PaymentStatus:      models.PaymentPaid,
		TargetJobURL:       in.TargetJobURL,
		RevisionsRemaining: 3,
	}
	order.SetAddOnIDs(in.AddOnIDs)

	if err := s.orders.Create(&order); err != nil {
		return models.Order{}, err
	}

	metrics.OrdersPlaced.WithLabelValues(in.PackageType).Inc()
	event.Fire("order.placed", order)
	if err := queue.Dispatch(jobs.OrderPlacedJob{OrderID: order.ID, ClientID: clientID, Price: price}); err != nil {
		logger.Warn("order: placed notification not queued", "order_id", order.ID, "error", err)
	}

	return order, nil
}

// ComputePrice sums the package price and each selected add-on, in whole
// dollars, from the admin-managed catalogue.
func ComputePrice(settings models.AdminSettings, packageType string, addOnIDs []string) (int, error) {
	var pkg *models.Package
	for _, p := range settings.PackageCatalog() {
		if p.ID == packageType {
			pkg = &p
			break
		}
	}
	if pkg == nil {
		return 0, Invalid(fmt.Sprintf("unknown package %q", packageType))
	}

	addons := settings.AddOnCatalog()
	total := pkg.Price
	for _, id := range addOnIDs {
		found := false
		for _, a := range addons {
			if a.ID == id {
				total += a.Price
				found = true
				break
			}
		}
		if !found {
			return 0, Invalid(fmt.Sprintf("unknown add-on %q", id))
		}
	}
	return total, nil
}

// luhnValid runs the Luhn checksum over a card number, ignoring spaces and
// dashes.
func luhnValid(number string) bool {
	var digits []int
	for _, r := range number {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		case r == ' ' || r == '-':
		default:
			return false
		}
	}
	if len(digits) < 12 || len(digits) > 19 {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// Find returns the order if actor may see it: the owning client, the assigned
// writer, or an admin.
func (s *OrderService) Find(orderID, actorID uint, role models.Role) (models.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}
	if !CanAccessOrder(order, actorID, role) {
		return models.Order{}, ErrForbidden
	}
	return order, nil
}

// CanAccessOrder is the single visibility rule for orders.
func CanAccessOrder(order models.Order, actorID uint, role models.Role) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleClient:
		return order.ClientID == actorID
	case models.RoleWriter:
		return order.AssignedTo(actorID)
	}
	return false
}

// Visible returns the orders actor may list: clients see their own, writers
// their assignments, admins everything on the first page.
func (s *OrderService) Visible(actorID uint, role models.Role, page, limit int) ([]models.Order, error) {
	switch role {
	case models.RoleClient:
		return s.orders.ForClient(actorID)
	case models.RoleWriter:
		return s.orders.ForWriter(actorID)
	case models.RoleAdmin:
		orders, _, err := s.orders.All(page, limit)
		return orders, err
	}
	return nil, ErrForbidden
}

// UpdateStatus moves an order through the work-progress graph. Writers may
// only move their own assignments; admins may make any legal move. Clients
// never move the status directly: a revision request is a message, not a
// state change.
func (s *OrderService) UpdateStatus(orderID, actorID uint, role models.Role, next models.OrderStatus) (models.Order, error) {
	if !next.Valid() {
		return models.Order{}, Invalid("unknown order status")
	}
	order, err := s.Find(orderID, actorID, role)
	if err != nil {
		return models.Order{}, err
	}

	switch role {
	case models.RoleWriter, models.RoleAdmin:
	default:
		return models.Order{}, ErrForbidden
	}

	if !order.Status.CanTransition(next) {
		return models.Order{}, ErrInvalidTransition
	}

	order.Status = next
	if err := s.orders.Update(&order); err != nil {
		return models.Order{}, err
	}
	event.Fire("order.status_changed", order)
	return order, nil
}

// AssignWriter pins a writer to an order. Admin only; the target must hold
// the writer role.
func (s *OrderService) AssignWriter(orderID, writerID uint) (models.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}

	writer, err := s.users.FindByID(writerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, Invalid("writer not found")
		}
		return models.Order{}, err
	}
	if writer.Role != models.RoleWriter {
		return models.Order{}, Invalid("user is not a writer")
	}

	order.WriterID = &writer.ID
	if order.Status == models.OrderPending {
		order.Status = models.OrderInProgress
	}
	if err := s.orders.Update(&order); err != nil {
		return models.Order{}, err
	}
	event.Fire("order.assigned", order)
	return order, nil
}

// movePayment applies one escrow transition. Admin only; callers are gated by
// route middleware.
func (s *OrderService) movePayment(orderID uint, next models.PaymentStatus) (models.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}
	if !order.PaymentStatus.CanTransition(next) {
		return models.Order{}, ErrInvalidTransition
	}
	order.PaymentStatus = next
	if err := s.orders.Update(&order); err != nil {
		return models.Order{}, err
	}
	metrics.EscrowTransitions.WithLabelValues(string(next)).Inc()
	event.Fire("order.payment_changed", order)
	return order, nil
}

// HoldEscrow moves a paid order's funds into escrow.
func (s *OrderService) HoldEscrow(orderID uint) (models.Order, error) {
	return s.movePayment(orderID, models.PaymentHeld)
}

// ReleaseEscrow pays the writer out. Held funds only; released is terminal,
// so a release can never be undone.
func (s *OrderService) ReleaseEscrow(orderID uint) (models.Order, error) {
	return s.movePayment(orderID, models.PaymentReleased)
}

// RefundEscrow returns held funds to the client. Terminal, like release.
func (s *OrderService) RefundEscrow(orderID uint) (models.Order, error) {
	return s.movePayment(orderID, models.PaymentRefunded)
}

// OverridePrice lets an admin set a custom price on an existing order.
func (s *OrderService) OverridePrice(orderID uint, price int) (models.Order, error) {
	if price < 0 {
		return models.Order{}, Invalid("price must not be negative")
	}
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}
	order.Price = price
	if err := s.orders.Update(&order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}
