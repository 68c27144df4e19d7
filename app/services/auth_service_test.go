package services

import (
	"testing"

	"github.com/careerloft/careerloft/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	setupTestDB(t)
	svc := NewAuthService()

	user, err := svc.Signup(SignupInput{
		Username: "jordan",
		Email:    "Jordan@Example.com",
		Password: "longenoughpw",
		FullName: "Jordan Li",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, user.Role)
	assert.Equal(t, "jordan@example.com", user.Email)
	assert.NotEqual(t, "longenoughpw", user.Password)

	got, token, refresh, err := svc.Login("jordan", "longenoughpw")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, refresh)
}

func TestSignupRejectsDuplicates(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "taken", models.RoleClient)

	svc := NewAuthService()
	_, err := svc.Signup(SignupInput{
		Username: "taken", Email: "fresh@example.com", Password: "longenoughpw",
	})
	assert.True(t, IsValidation(err))

	_, err = svc.Signup(SignupInput{
		Username: "fresh", Email: "taken@example.com", Password: "longenoughpw",
	})
	assert.True(t, IsValidation(err))
}

func TestSignupRejectsAdminRole(t *testing.T) {
	setupTestDB(t)
	svc := NewAuthService()
	_, err := svc.Signup(SignupInput{
		Username: "sneaky", Email: "sneaky@example.com",
		Password: "longenoughpw", Role: "admin",
	})
	assert.True(t, IsValidation(err))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "jordan", models.RoleClient)

	svc := NewAuthService()
	_, _, _, wrongPw := svc.Login("jordan", "not-the-password")
	_, _, _, noUser := svc.Login("nobody", "whatever")

	assert.ErrorIs(t, wrongPw, ErrInvalidCredentials)
	assert.ErrorIs(t, noUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPw.Error(), noUser.Error())
}

func TestLoginRejectsLegacyPasswordRows(t *testing.T) {
	db := setupTestDB(t)
	user := models.User{
		Username: "legacy", Email: "legacy@example.com",
		Password: "plaintext-from-import", Role: models.RoleClient,
	}
	require.NoError(t, db.Create(&user).Error)

	svc := NewAuthService()
	_, _, _, err := svc.Login("legacy", "plaintext-from-import")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignupConvertsLead(t *testing.T) {
	db := setupTestDB(t)
	lead := models.Lead{Email: "prospect@example.com", Status: models.LeadNew, Source: "scanner"}
	require.NoError(t, db.Create(&lead).Error)

	svc := NewAuthService()
	_, err := svc.Signup(SignupInput{
		Username: "prospect", Email: "prospect@example.com", Password: "longenoughpw",
	})
	require.NoError(t, err)

	var got models.Lead
	require.NoError(t, db.First(&got, lead.ID).Error)
	assert.Equal(t, models.LeadConverted, got.Status)
}
