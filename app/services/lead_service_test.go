package services

import (
	"testing"

	"github.com/careerloft/careerloft/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureDedupesByEmail(t *testing.T) {
	setupTestDB(t)
	svc := NewLeadService()

	first, err := svc.Capture(CaptureInput{Email: "Prospect@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "prospect@example.com", first.Email)
	assert.Equal(t, models.LeadNew, first.Status)
	assert.Equal(t, "chat_widget", first.Source)

	second, err := svc.Capture(CaptureInput{
		Email: "prospect@example.com",
		Name:  "Sam Prospect",
		Phone: "555-0100",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Sam Prospect", second.Name)
	assert.Equal(t, "555-0100", second.Phone)

	leads, _, err := svc.List(1, 20)
	require.NoError(t, err)
	assert.Len(t, leads, 1)
}

func TestScanResumeScoresInRange(t *testing.T) {
	setupTestDB(t)
	svc := NewLeadService()

	lead, result, err := svc.ScanResume(CaptureInput{Email: "scan@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "scanner", lead.Source)
	assert.GreaterOrEqual(t, result.Score, 55)
	assert.LessOrEqual(t, result.Score, 90)
	assert.Equal(t, result.Score, lead.ATSScore)
	assert.GreaterOrEqual(t, len(result.Suggestions), 2)
	assert.LessOrEqual(t, len(result.Suggestions), 3)
}

func TestLeadUpdateValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLeadService()

	lead, err := svc.Capture(CaptureInput{Email: "edit@example.com"})
	require.NoError(t, err)

	_, err = svc.Update(lead.ID, UpdateInput{Status: "on_fire"})
	assert.True(t, IsValidation(err))

	client := createUser(t, db, "client1", models.RoleClient)
	_, err = svc.Update(lead.ID, UpdateInput{AssignedWriterID: &client.ID})
	assert.True(t, IsValidation(err))

	writer := createUser(t, db, "writer1", models.RoleWriter)
	updated, err := svc.Update(lead.ID, UpdateInput{
		Status:           string(models.LeadContacted),
		AssignedWriterID: &writer.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.LeadContacted, updated.Status)
	require.NotNil(t, updated.AssignedWriterID)
	assert.Equal(t, writer.ID, *updated.AssignedWriterID)

	mine, err := svc.ForWriter(writer.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestLeadDelete(t *testing.T) {
	setupTestDB(t)
	svc := NewLeadService()

	lead, err := svc.Capture(CaptureInput{Email: "gone@example.com"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(lead.ID))
	assert.ErrorIs(t, svc.Delete(lead.ID), ErrNotFound)
}
