package services

import (
	"errors"
	"strings"

	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/app/repositories"
	"github.com/careerloft/careerloft/pkg/auth"
	"github.com/careerloft/careerloft/pkg/event"
	"github.com/careerloft/careerloft/pkg/logger"
	"gorm.io/gorm"
)

// AuthService handles signup, login and credential checks.
type AuthService struct {
	users *repositories.UserRepository
	leads *repositories.LeadRepository
}

func NewAuthService() *AuthService {
	return &AuthService{
		users: repositories.NewUserRepository(),
		leads: repositories.NewLeadRepository(),
	}
}

// SignupInput is the payload for account creation.
type SignupInput struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"nullable,max=255"`
	Role     string `json:"role"`
}

// Signup creates an account. Only client and writer roles may self-register;
// admins are seeded or promoted by another admin. If a lead already exists for
// the email, it is marked converted.
func (s *AuthService) Signup(in SignupInput) (models.User, error) {
	role := models.Role(in.Role)
	if in.Role == "" {
		role = models.RoleClient
	}
	if role != models.RoleClient && role != models.RoleWriter {
		return models.User{}, Invalid("role must be client or writer")
	}

	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	taken, err := s.users.UsernameTaken(username)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, Invalid("username is already taken")
	}
	taken, err = s.users.EmailTaken(email)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, Invalid("email is already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hash,
		FullName: in.FullName,
		Role:     role,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, err
	}

	s.convertLead(email)
	event.Fire("user.registered", user)

	return user, nil
}

// convertLead closes the funnel for a prospect who just registered.
func (s *AuthService) convertLead(email string) {
	lead, err := s.leads.FindByEmail(email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("auth: lead lookup failed", "email", email, "error", err)
		}
		return
	}
	if lead.Status == models.LeadConverted {
		return
	}
	lead.Status = models.LeadConverted
	if err := s.leads.Update(&lead); err != nil {
		logger.Warn("auth: lead conversion failed", "lead_id", lead.ID, "error", err)
	}
}

// Login verifies credentials and returns the user plus a token pair. Every
// failure mode returns the same ErrInvalidCredentials so callers cannot probe
// which usernames exist.
func (s *AuthService) Login(username, password string) (models.User, string, string, error) {
	user, err := s.users.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", "", ErrInvalidCredentials
		}
		return models.User{}, "", "", err
	}

	// Reject rows whose stored value is not a bcrypt hash, such as accounts
	// imported from a legacy system that were never migrated.
	if !strings.HasPrefix(user.Password, "$2") {
		return models.User{}, "", "", ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return models.User{}, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, string(user.Role))
	if err != nil {
		return models.User{}, "", "", err
	}

	return user, token, refresh, nil
}
