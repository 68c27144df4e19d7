package controllers

import (
	"net/http"

	"github.com/careerloft/careerloft/app/services"
	"github.com/careerloft/careerloft/pkg/bind"
	"github.com/careerloft/careerloft/pkg/middleware"
	"github.com/careerloft/careerloft/pkg/response"
)

// MessageController covers order threads and the public lead chat. Both are
// poll-based; clients re-fetch the thread rather than holding a connection.
type MessageController struct {
	messages *services.MessageService
}

func NewMessageController() *MessageController {
	return &MessageController{messages: services.NewMessageService()}
}

// OrderThread returns an order's messages, oldest first.
// GET /api/orders/{id}/messages
func (c *MessageController) OrderThread(w http.ResponseWriter, r *http.Request) {
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
	msgs, err := c.messages.OrderThread(orderID, userID, role)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, msgs)
}

// PostToOrder appends a message to an order's thread.
// POST /api/orders/{id}/messages
func (c *MessageController) PostToOrder(w http.ResponseWriter, r *http.Request) {
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

	var in services.PostInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	msg, err := c.messages.PostToOrder(orderID, userID, role, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, msg)
}

type leadChatInput struct {
	Content string `json:"content" validate:"required,max=10000"`
}

// LeadThread returns a lead chat. Public: the widget polls with its lead id.
// GET /api/leads/{id}/messages
func (c *MessageController) LeadThread(w http.ResponseWriter, r *http.Request) {
	leadID, ok := uintParam(r, "id")
	if !ok {
		response.BadRequest(w, "invalid lead id")
		return
	}
	msgs, err := c.messages.LeadThread(leadID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, msgs)
}

// PostToLead appends to a lead chat. The anonymous visitor posts with sender
// id 0; a logged-in staff member's reply carries their real id.
// POST /api/leads/{id}/messages
func (c *MessageController) PostToLead(w http.ResponseWriter, r *http.Request) {
	leadID, ok := uintParam(r, "id")
	if !ok {
		response.BadRequest(w, "invalid lead id")
		return
	}

	var in leadChatInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	var senderID uint
	if id, found := middleware.UserIDFromCtx(r); found {
		senderID = id
	}

	msg, err := c.messages.PostToLead(leadID, senderID, in.Content)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, msg)
}

// MarkRead flips a message's read flag.
// PATCH /api/messages/{id}/read
func (c *MessageController) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	messageID, ok := uintParam(r, "id")
	if !ok {
		response.BadRequest(w, "invalid message id")
		return
	}
	if err := c.messages.MarkRead(messageID, userID, role); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "marked read"})
}
