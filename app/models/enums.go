package models

// Closed vocabularies for every role/status/type field. The source of truth
// for what a handler may write: values outside these sets are rejected at
// validation time, and state changes must pass the transition tables.

// Role is a user's fixed role in the marketplace.
type Role string

const (
	RoleClient Role = "client"
	RoleWriter Role = "writer"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleWriter, RoleAdmin:
		return true
	}
	return false
}

// OrderStatus is the work-progress state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderInProgress OrderStatus = "in_progress"
	OrderRevision   OrderStatus = "revision"
	OrderCompleted  OrderStatus = "completed"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderInProgress, OrderRevision, OrderCompleted:
		return true
	}
	return false
}

// orderTransitions is the allowed status graph:
// pending → in_progress → revision ⟲ in_progress → completed.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderInProgress},
	OrderInProgress: {OrderRevision, OrderCompleted},
	OrderRevision:   {OrderInProgress, OrderCompleted},
	OrderCompleted:  {},
}

// CanTransition reports whether s may move to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentStatus is the escrow sub-state, independent of OrderStatus.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentHeld     PaymentStatus = "held"
	PaymentReleased PaymentStatus = "released"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentHeld, PaymentReleased, PaymentRefunded:
		return true
	}
	return false
}

// paymentTransitions: pending/paid → held → released | refunded.
// released and refunded are terminal, which makes escrow release one-way.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:  {PaymentPaid, PaymentHeld},
	PaymentPaid:     {PaymentHeld},
	PaymentHeld:     {PaymentReleased, PaymentRefunded},
	PaymentReleased: {},
	PaymentRefunded: {},
}

// CanTransition reports whether s may move to next.
func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentMethod is how the client paid at checkout.
type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentPaypal PaymentMethod = "paypal"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentPaypal
}

// MessageType classifies a message within an order or lead thread.
type MessageType string

const (
	MessageChat      MessageType = "chat"
	MessageLeadChat  MessageType = "lead_chat"
	MessageRevision  MessageType = "revision"
	MessageOrderChat MessageType = "order_chat"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageChat, MessageLeadChat, MessageRevision, MessageOrderChat:
		return true
	}
	return false
}

// LeadStatus tracks a prospect through the sales funnel.
type LeadStatus string

const (
	LeadNew          LeadStatus = "new"
	LeadContacted    LeadStatus = "contacted"
	LeadFollowedUp   LeadStatus = "followed_up"
	LeadConverted    LeadStatus = "converted"
	LeadUnsubscribed LeadStatus = "unsubscribed"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadFollowedUp, LeadConverted, LeadUnsubscribed:
		return true
	}
	return false
}

// ApplicationStatus tracks a tracked job application.
type ApplicationStatus string

const (
	ApplicationSaved        ApplicationStatus = "saved"
	ApplicationApplied      ApplicationStatus = "applied"
	ApplicationInterviewing ApplicationStatus = "interviewing"
	ApplicationOffer        ApplicationStatus = "offer"
	ApplicationRejected     ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationSaved, ApplicationApplied, ApplicationInterviewing,
		ApplicationOffer, ApplicationRejected:
		return true
	}
	return false
}
