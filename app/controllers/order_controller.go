package controllers

import (
	"net/http"

	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/app/resources"
	"github.com/careerloft/careerloft/app/services"
	"github.com/careerloft/careerloft/pkg/bind"
	"github.com/careerloft/careerloft/pkg/collection"
	"github.com/careerloft/careerloft/pkg/resource"
	"github.com/careerloft/careerloft/pkg/response"
)

// OrderController covers checkout and the order lifecycle endpoints.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController() *OrderController {
	return &OrderController{orders: services.NewOrderService()}
}

// Checkout places a new order for the authenticated client.
// POST /api/orders
func (c *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	if role != models.RoleClient {
		response.Forbidden(w)
		return
	}

	var in services.CheckoutInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.Checkout(userID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, resources.OrderMap(order))
}

// Index lists the orders visible to the caller.
// GET /api/orders
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	p, l := page(r)
	orders, err := c.orders.Visible(userID, role, p, l)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, collection.Map(orders, resources.OrderMap))
}

// Show returns one order.
// GET /api/orders/{id}
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	orderID, ok := uintParam(r, "id")
	if !ok {
		response.BadRequest(w, "invalid order id")
		return
	}
	order, err := c.orders.Find(orderID, userID, role)
	if err != nil {
		fail(w, r, err)
		return
	}
	resource.New(&resources.OrderResource{}, order).Respond(w)
}

type statusInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus moves an order along the work-progress graph.
// PATCH /api/orders/{id}/status
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	orderID, ok := uintParam(r, "id")
	if !ok {
		response.BadRequest(w, "invalid order id")
		return
	}

	var in statusInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.UpdateStatus(orderID, userID, role, models.OrderStatus(in.Status))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, resources.OrderMap(order))
}

type assignInput struct {
	WriterID uint `json:"writer_id" validate:"required"`
}

// AssignWriter pins a writer to an order. Admin only.
// POST /api/orders/{id}/assign
func (c *OrderController) AssignWriter(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uintParam(r, "id")
	if !ok {
		response.BadRequest(w, "invalid order id")
		return
	}

	var in assignInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.AssignWriter(orderID, in.WriterID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, resources.OrderMap(order))
}

// escrow applies one admin escrow action.
func (c *OrderController) escrow(w http.ResponseWriter, r *http.Request,
	move func(uint) (models.Order, error)) {
	orderID, ok := uintParam(r, "id")
	if !ok {
		response.BadRequest(w, "invalid order id")
		return
	}
	order, err := move(orderID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, resources.OrderMap(order))
}

// Hold moves a paid order's funds into escrow. Admin only.
// POST /api/orders/{id}/hold
func (c *OrderController) Hold(w http.ResponseWriter, r *http.Request) {
	c.escrow(w, r, c.orders.HoldEscrow)
}

// Release pays the writer out. Admin only.
// POST /api/orders/{id}/release
func (c *OrderController) Release(w http.ResponseWriter, r *http.Request) {
	c.escrow(w, r, c.orders.ReleaseEscrow)
}

// Refund returns held funds to the client. Admin only.
// POST /api/orders/{id}/refund
func (c *OrderController) Refund(w http.ResponseWriter, r *http.Request) {
	c.escrow(w, r, c.orders.RefundEscrow)
}

type priceInput struct {
	Price int `json:"price"`
}

// OverridePrice sets a custom price on an order. Admin only.
// PATCH /api/orders/{id}/price
func (c *OrderController) OverridePrice(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uintParam(r, "id")
	if !ok {
		response.BadRequest(w, "invalid order id")
		return
	}

	var in priceInput
	if _, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	order, err := c.orders.OverridePrice(orderID, in.Price)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, resources.OrderMap(order))
}
