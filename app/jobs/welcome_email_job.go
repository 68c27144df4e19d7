package jobs

import (
	"errors"
	"fmt"

	"github.com/careerloft/careerloft/app/repositories"
	"github.com/careerloft/careerloft/pkg/mail"
	"gorm.io/gorm"
)

// WelcomeEmailJob mails a new account after signup.
type WelcomeEmailJob struct {
	UserID uint `json:"user_id"`
}

func (j WelcomeEmailJob) Handle() error {
	user, err := repositories.NewUserRepository().FindByID(j.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Account deleted before the worker got here; nothing to send.
			return nil
		}
		return fmt.Errorf("welcome email: load user %d: %w", j.UserID, err)
	}

	name := user.FullName
	if name == "" {
		name = user.Username
	}

	return mail.To(user.Email).
		Subject("Welcome to CareerLoft").
		Body(fmt.Sprintf(
			"<h1>Welcome, %s!</h1><p>Your account is ready. Browse our resume packages whenever you are.</p>",
			name)).
		Send()
}
