package services

import (
	"testing"

	"github.com/careerloft/careerloft/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePrice(t *testing.T) {
	settings := models.AdminSettings{}
	settings.SetPackageCatalog([]models.Package{
		{ID: "starter", Price: 199},
	})
	settings.SetAddOnCatalog([]models.AddOn{
		{ID: "linkedin", Price: 125},
		{ID: "cover_letter", Price: 49},
	})

	price, err := ComputePrice(settings, "starter", nil)
	require.NoError(t, err)
	assert.Equal(t, 199, price)

	price, err = ComputePrice(settings, "starter", []string{"linkedin"})
	require.NoError(t, err)
	assert.Equal(t, 324, price)

	price, err = ComputePrice(settings, "starter", []string{"linkedin", "cover_letter"})
	require.NoError(t, err)
	assert.Equal(t, 373, price)

	_, err = ComputePrice(settings, "deluxe", nil)
	assert.True(t, IsValidation(err))

	_, err = ComputePrice(settings, "starter", []string{"ghostwriting"})
	assert.True(t, IsValidation(err))
}

func TestLuhnValid(t *testing.T) {
	assert.True(t, luhnValid("4242 4242 4242 4242"))
	assert.True(t, luhnValid("4242-4242-4242-4242"))
	assert.False(t, luhnValid("4242424242424241"))
	assert.False(t, luhnValid("1234"))
	assert.False(t, luhnValid("4242abcd42424242"))
	assert.False(t, luhnValid(""))
}

func TestCheckoutRecomputesPrice(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	client := createUser(t, db, "client1", models.RoleClient)

	svc := NewOrderService()
	order, err := svc.Checkout(client.ID, CheckoutInput{
		PackageType:   "starter",
		AddOnIDs:      []string{"linkedin"},
		PaymentMethod: "paypal",
	})
	require.NoError(t, err)

	assert.Equal(t, 324, order.Price)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)
	assert.Equal(t, 3, order.RevisionsRemaining)
	assert.Equal(t, client.ID, order.ClientID)
	assert.Nil(t, order.WriterID)
}

func TestCheckoutRejectsBadCard(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	client := createUser(t, db, "client1", models.RoleClient)

	svc := NewOrderService()
	_, err := svc.Checkout(client.ID, CheckoutInput{
		PackageType:   "starter",
		PaymentMethod: "card",
		CardNumber:    "4242 4242 4242 4241",
	})
	assert.True(t, IsValidation(err))

	_, err = svc.Checkout(client.ID, CheckoutInput{
		PackageType:   "starter",
		PaymentMethod: "card",
		CardNumber:    "4242 4242 4242 4242",
	})
	assert.NoError(t, err)
}

func TestEscrowLifecycle(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	client := createUser(t, db, "client1", models.RoleClient)

	svc := NewOrderService()
	order, err := svc.Checkout(client.ID, CheckoutInput{
		PackageType:   "starter",
		PaymentMethod: "paypal",
	})
	require.NoError(t, err)

	// Release before hold is blocked.
	_, err = svc.ReleaseEscrow(order.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	order, err = svc.HoldEscrow(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentHeld, order.PaymentStatus)

	order, err = svc.ReleaseEscrow(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentReleased, order.PaymentStatus)

	// Released is terminal: no refund, no re-hold.
	_, err = svc.RefundEscrow(order.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = svc.HoldEscrow(order.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRefundIsTerminal(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	client := createUser(t, db, "client1", models.RoleClient)

	svc := NewOrderService()
	order, err := svc.Checkout(client.ID, CheckoutInput{
		PackageType: "starter", PaymentMethod: "paypal",
	})
	require.NoError(t, err)

	_, err = svc.HoldEscrow(order.ID)
	require.NoError(t, err)
	order, err = svc.RefundEscrow(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRefunded, order.PaymentStatus)

	_, err = svc.ReleaseEscrow(order.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusRoleRules(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	client := createUser(t, db, "client1", models.RoleClient)
	writer := createUser(t, db, "writer1", models.RoleWriter)

	svc := NewOrderService()
	order, err := svc.Checkout(client.ID, CheckoutInput{
		PackageType: "starter", PaymentMethod: "paypal",
	})
	require.NoError(t, err)

	// Unassigned writer cannot touch the order at all.
	_, err = svc.UpdateStatus(order.ID, writer.ID, models.RoleWriter, models.OrderInProgress)
	assert.ErrorIs(t, err, ErrForbidden)

	order, err = svc.AssignWriter(order.ID, writer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderInProgress, order.Status)

	// Clients never move the status, not even into revision. A revision
	// request travels as a message instead.
	_, err = svc.UpdateStatus(order.ID, client.ID, models.RoleClient, models.OrderCompleted)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.UpdateStatus(order.ID, client.ID, models.RoleClient, models.OrderRevision)
	assert.ErrorIs(t, err, ErrForbidden)

	// The assigned writer opens the revision round.
	order, err = svc.UpdateStatus(order.ID, writer.ID, models.RoleWriter, models.OrderRevision)
	require.NoError(t, err)
	assert.Equal(t, models.OrderRevision, order.Status)

	// Assigned writer finishes the revision.
	order, err = svc.UpdateStatus(order.ID, writer.ID, models.RoleWriter, models.OrderCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, order.Status)

	// Completed is terminal for the work graph.
	_, err = svc.UpdateStatus(order.ID, writer.ID, models.RoleWriter, models.OrderInProgress)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAssignWriterRejectsNonWriter(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	client := createUser(t, db, "client1", models.RoleClient)
	other := createUser(t, db, "client2", models.RoleClient)

	svc := NewOrderService()
	order, err := svc.Checkout(client.ID, CheckoutInput{
		PackageType: "starter", PaymentMethod: "paypal",
	})
	require.NoError(t, err)

	_, err = svc.AssignWriter(order.ID, other.ID)
	assert.True(t, IsValidation(err))
}

func TestOrderVisibility(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	client := createUser(t, db, "client1", models.RoleClient)
	otherClient := createUser(t, db, "client2", models.RoleClient)
	writer := createUser(t, db, "writer1", models.RoleWriter)
	otherWriter := createUser(t, db, "writer2", models.RoleWriter)

	svc := NewOrderService()
	order, err := svc.Checkout(client.ID, CheckoutInput{
		PackageType: "starter", PaymentMethod: "paypal",
	})
	require.NoError(t, err)
	_, err = svc.AssignWriter(order.ID, writer.ID)
	require.NoError(t, err)

	// Owner, assigned writer and admin see the order.
	_, err = svc.Find(order.ID, client.ID, models.RoleClient)
	assert.NoError(t, err)
	_, err = svc.Find(order.ID, writer.ID, models.RoleWriter)
	assert.NoError(t, err)
	_, err = svc.Find(order.ID, 999, models.RoleAdmin)
	assert.NoError(t, err)

	// Everyone else is forbidden.
	_, err = svc.Find(order.ID, otherClient.ID, models.RoleClient)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Find(order.ID, otherWriter.ID, models.RoleWriter)
	assert.ErrorIs(t, err, ErrForbidden)

	// Listings are scoped the same way.
	mine, err := svc.Visible(writer.ID, models.RoleWriter, 1, 20)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	none, err := svc.Visible(otherWriter.ID, models.RoleWriter, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOverridePrice(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	client := createUser(t, db, "client1", models.RoleClient)

	svc := NewOrderService()
	order, err := svc.Checkout(client.ID, CheckoutInput{
		PackageType: "starter", PaymentMethod: "paypal",
	})
	require.NoError(t, err)

	order, err = svc.OverridePrice(order.ID, 150)
	require.NoError(t, err)
	assert.Equal(t, 150, order.Price)

	_, err = svc.OverridePrice(order.ID, -1)
	assert.True(t, IsValidation(err))
}
