package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderPending, OrderInProgress, true},
		{OrderPending, OrderCompleted, false},
		{OrderPending, OrderRevision, false},
		{OrderInProgress, OrderRevision, true},
		{OrderInProgress, OrderCompleted, true},
		{OrderRevision, OrderInProgress, true},
		{OrderRevision, OrderCompleted, true},
		{OrderCompleted, OrderInProgress, false},
		{OrderCompleted, OrderRevision, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.allowed, c.from.CanTransition(c.to),
			"%s -> %s", c.from, c.to)
	}
}

func TestPaymentReleaseIsTerminal(t *testing.T) {
	for _, next := range []PaymentStatus{PaymentPending, PaymentPaid, PaymentHeld, PaymentRefunded} {
		assert.False(t, PaymentReleased.CanTransition(next), "released -> %s must be blocked", next)
		assert.False(t, PaymentRefunded.CanTransition(next), "refunded -> %s must be blocked", next)
	}
}

func TestPaymentEscrowPath(t *testing.T) {
	assert.True(t, PaymentPending.CanTransition(PaymentPaid))
	assert.True(t, PaymentPaid.CanTransition(PaymentHeld))
	assert.True(t, PaymentHeld.CanTransition(PaymentReleased))
	assert.True(t, PaymentHeld.CanTransition(PaymentRefunded))

	// Escrow cannot be skipped or reversed.
	assert.False(t, PaymentPaid.CanTransition(PaymentReleased))
	assert.False(t, PaymentPaid.CanTransition(PaymentRefunded))
	assert.False(t, PaymentHeld.CanTransition(PaymentPaid))
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, RoleWriter.Valid())
	assert.False(t, Role("superuser").Valid())

	assert.True(t, OrderRevision.Valid())
	assert.False(t, OrderStatus("cancelled").Valid())

	assert.True(t, PaymentCard.Valid())
	assert.False(t, PaymentMethod("crypto").Valid())

	assert.True(t, LeadFollowedUp.Valid())
	assert.False(t, LeadStatus("stale").Valid())

	assert.True(t, ApplicationOffer.Valid())
	assert.False(t, ApplicationStatus("ghosted").Valid())
}

func TestOrderAddOnRoundTrip(t *testing.T) {
	var o Order
	assert.Nil(t, o.AddOnIDs())

	o.SetAddOnIDs([]string{"cover_letter", "linkedin"})
	assert.Equal(t, []string{"cover_letter", "linkedin"}, o.AddOnIDs())

	o.SetAddOnIDs(nil)
	assert.Nil(t, o.AddOnIDs())
}
